// Package loader resolves the downloaded export files and reads them into
// in-memory tables.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
	"github.com/penwyp/go-sensor-verify/internal/util"
)

const (
	// SeriesSuffix marks the periodic sensor export in a download folder.
	SeriesSuffix = "_timestream.csv"
	// EventSuffix marks the detection event export.
	EventSuffix = "_dynamodb.csv"
)

// Inputs holds the resolved dataset paths and the folder that anchors the
// analysis outputs.
type Inputs struct {
	SeriesPath string
	EventPath  string
	BaseDir    string
}

// Resolve locates the two export files. Inside inputFolder, the first
// file (by name) matching each suffix is taken; explicit paths override
// discovery. It fails only when no base folder can be determined at all.
func Resolve(inputFolder, seriesPath, eventPath string) (Inputs, error) {
	in := Inputs{SeriesPath: seriesPath, EventPath: eventPath}

	if inputFolder != "" {
		in.BaseDir = inputFolder
		entries, err := os.ReadDir(inputFolder)
		if err != nil {
			return Inputs{}, fmt.Errorf("read input folder: %w", err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			if in.SeriesPath == "" && strings.HasSuffix(name, SeriesSuffix) {
				in.SeriesPath = filepath.Join(inputFolder, name)
			}
			if in.EventPath == "" && strings.HasSuffix(name, EventSuffix) {
				in.EventPath = filepath.Join(inputFolder, name)
			}
		}
	} else if seriesPath != "" {
		in.BaseDir = filepath.Dir(seriesPath)
	} else if eventPath != "" {
		in.BaseDir = filepath.Dir(eventPath)
	}

	if in.BaseDir == "" {
		return Inputs{}, fmt.Errorf("cannot determine input folder: provide --input-folder or a dataset path")
	}
	return in, nil
}

// LoadTable reads a delimited export into a Table. An empty or missing
// path yields a nil table, which downstream sections report as "no data".
func LoadTable(path string) (*model.Table, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		util.LogDebugf("Dataset not found: %s - %v", path, err)
		return nil, nil
	}

	start := time.Now()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return model.NewTable(nil, nil), nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	table := model.NewTable(header, records[1:])

	util.LogDebugf("Loaded %s: %d rows, %d columns, duration %v",
		filepath.Base(path), table.Len(), len(header), time.Since(start))
	return table, nil
}
