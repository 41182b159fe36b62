package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
	"github.com/penwyp/go-sensor-verify/internal/presentation/formatter"
)

const seriesCSV = `time,four_types
2024-05-01 09:00:00,1
2024-05-01 09:00:10,1
2024-05-01 09:00:30,2
`

// One detection payload in the loose event dialect, one empty row.
const eventCSV = `data
"{'Gender': {'Value': 'Male'}, 'AgeRange': {'Low': Decimal('20'), 'High': Decimal('30')}, 'mask': {'Value': 'True'}, 'a': {'b': Decimal('5')}}"
""
`

const attributeConfigJSON = `{
	"attributes": [
		{"name": "mask", "keys": ["mask"], "type": "bool", "value_key": "Value"},
		{"name": "depth", "keys": ["a.b"], "type": "number"}
	]
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dev_timestream.csv"), []byte(seriesCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dev_dynamodb.csv"), []byte(eventCSV), 0o644))
	return dir
}

func TestRunFullAnalysis(t *testing.T) {
	dir := writeFixture(t)
	configPath := filepath.Join(dir, "attributes.json")
	require.NoError(t, os.WriteFile(configPath, []byte(attributeConfigJSON), 0o644))

	a := New(&Config{
		InputFolder: dir,
		ConfigPath:  configPath,
		EmitCSV:     true,
	})
	report, err := a.Run()
	require.NoError(t, err)
	require.NotNil(t, report)

	// Series continuity: steps of 10s and 20s tie on frequency, the
	// smaller wins, so the 20s interval reads as one gap of one point.
	tc := report.TimeContinuity
	require.NotNil(t, tc)
	require.Empty(t, tc.Message)
	require.NotNil(t, tc.ExpectedStepSeconds)
	assert.Equal(t, int64(10), *tc.ExpectedStepSeconds)
	assert.Equal(t, 1, tc.GapCount)
	assert.Equal(t, 1, tc.MissingPointsTotalEst)
	assert.Equal(t, 4, tc.ExpectedPointsEst)
	assert.InDelta(t, 0.75, tc.ContinuityRatioEst, 1e-9)

	cf := report.CodeField
	require.NotNil(t, cf)
	assert.Equal(t, 3, cf.Rows)
	require.Len(t, cf.Distribution, 2)
	assert.Equal(t, 1, *cf.Distribution[0].Code)
	assert.Equal(t, 2, cf.Distribution[0].Count)
	assert.Equal(t, 2, *cf.Distribution[1].Code)

	dj := report.Demographics
	require.NotNil(t, dj)
	assert.Equal(t, 2, dj.Rows)
	require.NotNil(t, dj.AgeStats)
	assert.Equal(t, 1, dj.AgeStats.ParsedOkRows)
	assert.Equal(t, 1, dj.AgeStats.AgeNonNull)
	require.NotNil(t, dj.AgeStats.AgeMean)
	assert.Equal(t, 25.0, *dj.AgeStats.AgeMean)
	require.Len(t, dj.GenderDistribution, 2)
	assert.Equal(t, "Male", dj.GenderDistribution[0].Gender)
	assert.Equal(t, "NA", dj.GenderDistribution[1].Gender)
	require.Len(t, dj.AgeBuckets, 1)
	assert.Equal(t, "25", dj.AgeBuckets[0].AgeBucket)

	dc := report.ConfigSummary
	require.NotNil(t, dc)
	assert.True(t, dc.Enabled)
	require.Len(t, dc.Attributes, 2)

	mask := dc.Attributes[0]
	assert.Equal(t, "mask", mask.Name)
	maskDist, ok := mask.Summary.([]model.DistributionEntry)
	require.True(t, ok)
	require.Len(t, maskDist, 2)
	assert.Equal(t, "True", maskDist[0].Value)
	assert.Equal(t, 1, maskDist[0].Count)
	assert.Equal(t, "NA", maskDist[1].Value)

	depth := dc.Attributes[1]
	assert.Equal(t, "depth", depth.Name)
	depthSummary, ok := depth.Summary.(*model.NumericSummary)
	require.True(t, ok)
	assert.Equal(t, 1, depthSummary.NonNull)
	require.NotNil(t, depthSummary.Mean)
	assert.Equal(t, 5.0, *depthSummary.Mean)
}

func TestRunWritesArtifacts(t *testing.T) {
	dir := writeFixture(t)

	a := New(&Config{InputFolder: dir, EmitCSV: true})
	report, err := a.Run()
	require.NoError(t, err)

	outDir := filepath.Join(dir, OutputDirName)
	assert.Equal(t, outDir, report.OutputDir)

	text, err := os.ReadFile(filepath.Join(outDir, ReportTxtName))
	require.NoError(t, err)
	assert.Contains(t, string(text), "=== Post-Download Analysis Report ===")
	assert.Contains(t, string(text), "- Gap count: 1")

	data, err := os.ReadFile(filepath.Join(outDir, SummaryJSONName))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	for _, key := range []string{"generated_at", "time_continuity", "four_types", "dynamodb_json", "dynamodb_cfg"} {
		assert.Contains(t, decoded, key)
	}

	// Derived CSVs only appear for sections that produced rows.
	assert.FileExists(t, filepath.Join(outDir, formatter.GapsCSV))
	assert.FileExists(t, filepath.Join(outDir, formatter.CodeFieldCSV))
	assert.FileExists(t, filepath.Join(outDir, formatter.GenderCSV))
	assert.FileExists(t, filepath.Join(outDir, formatter.AgeBucketCSV))
}

func TestRunWithoutEmitCSV(t *testing.T) {
	dir := writeFixture(t)

	a := New(&Config{InputFolder: dir})
	_, err := a.Run()
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, OutputDirName, formatter.GapsCSV))
	assert.FileExists(t, filepath.Join(dir, OutputDirName, ReportTxtName))
}

func TestRunSeriesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dev_timestream.csv"), []byte(seriesCSV), 0o644))

	a := New(&Config{InputFolder: dir})
	report, err := a.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, report.TimeContinuity.GapCount)
	assert.NotEmpty(t, report.Demographics.Message)
	assert.False(t, report.ConfigSummary.Enabled)
}

func TestRunNoInputs(t *testing.T) {
	a := New(&Config{InputFolder: t.TempDir()})
	_, err := a.Run()
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestPayloadStats(t *testing.T) {
	ps := NewPayloadStats()
	ps.IncrementParsed()
	ps.IncrementParsed()
	ps.IncrementParsed()
	ps.IncrementEmpty()
	ps.IncrementFailure()

	total, parsed, empty, failures, parseRate := ps.GetStats()
	assert.Equal(t, int64(5), total)
	assert.Equal(t, int64(3), parsed)
	assert.Equal(t, int64(1), empty)
	assert.Equal(t, int64(1), failures)
	assert.InDelta(t, 60.0, parseRate, 1e-9)
}

func TestPayloadStatsEmpty(t *testing.T) {
	_, _, _, _, parseRate := NewPayloadStats().GetStats()
	assert.Equal(t, 0.0, parseRate)
}

func TestRunBadConfigDisablesSection(t *testing.T) {
	dir := writeFixture(t)
	configPath := filepath.Join(dir, "attributes.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{not json"), 0o644))

	a := New(&Config{InputFolder: dir, ConfigPath: configPath})
	report, err := a.Run()
	require.NoError(t, err)
	assert.False(t, report.ConfigSummary.Enabled)
}
