package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveDiscoversBySuffix(t *testing.T) {
	dir := t.TempDir()
	series := writeFile(t, dir, "device42_timestream.csv", "time\n")
	event := writeFile(t, dir, "device42_dynamodb.csv", "data\n")
	writeFile(t, dir, "readme.txt", "ignore me")

	in, err := Resolve(dir, "", "")
	require.NoError(t, err)
	assert.Equal(t, dir, in.BaseDir)
	assert.Equal(t, series, in.SeriesPath)
	assert.Equal(t, event, in.EventPath)
}

func TestResolveTakesFirstMatchByName(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a_timestream.csv", "time\n")
	writeFile(t, dir, "b_timestream.csv", "time\n")

	in, err := Resolve(dir, "", "")
	require.NoError(t, err)
	assert.Equal(t, first, in.SeriesPath)
}

func TestResolveExplicitPathsOverrideDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "auto_timestream.csv", "time\n")
	explicit := filepath.Join(dir, "custom.csv")

	in, err := Resolve(dir, explicit, "")
	require.NoError(t, err)
	assert.Equal(t, explicit, in.SeriesPath)
}

func TestResolveFromExplicitPathsOnly(t *testing.T) {
	in, err := Resolve("", "/data/run7/x_timestream.csv", "")
	require.NoError(t, err)
	assert.Equal(t, "/data/run7", in.BaseDir)

	in, err = Resolve("", "", "/data/run8/x_dynamodb.csv")
	require.NoError(t, err)
	assert.Equal(t, "/data/run8", in.BaseDir)
}

func TestResolveNoInputs(t *testing.T) {
	_, err := Resolve("", "", "")
	assert.Error(t, err)
}

func TestResolveMissingFolder(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "absent"), "", "")
	assert.Error(t, err)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "export.csv",
		"time,four_types,data\n"+
			"2024-05-01 09:00:00,1,\"{\"\"x\"\": 1}\"\n"+
			"2024-05-01 09:00:10,2\n")

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.Equal(t, []string{"time", "four_types", "data"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"1", "2"}, tbl.Column("four_types"))
	// Short rows read as empty cells.
	assert.Equal(t, []string{`{"x": 1}`, ""}, tbl.Column("data"))
}

func TestLoadTableStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bom.csv", "\uFEFFtime\n2024-05-01 09:00:00\n")

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.True(t, tbl.HasColumn("time"))
}

func TestLoadTableMissingOrEmptyPath(t *testing.T) {
	tbl, err := LoadTable("")
	assert.NoError(t, err)
	assert.Nil(t, tbl)

	tbl, err = LoadTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.NoError(t, err)
	assert.Nil(t, tbl)
}

func TestLoadTableEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv", "")

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.Equal(t, 0, tbl.Len())
}
