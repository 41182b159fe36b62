// Package analyzer orchestrates one post-download analysis run: resolve
// the export files, load them, run the four analyses, assemble the report,
// and write the output artifacts.
package analyzer

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-sensor-verify/internal/core/config"
	"github.com/penwyp/go-sensor-verify/internal/core/continuity"
	"github.com/penwyp/go-sensor-verify/internal/core/distribution"
	"github.com/penwyp/go-sensor-verify/internal/core/extract"
	"github.com/penwyp/go-sensor-verify/internal/core/model"
	"github.com/penwyp/go-sensor-verify/internal/data/loader"
	"github.com/penwyp/go-sensor-verify/internal/data/payload"
	"github.com/penwyp/go-sensor-verify/internal/presentation/formatter"
	"github.com/penwyp/go-sensor-verify/internal/util"
)

// Column names in the export tables.
const (
	timeColumn    = "time"
	codeColumn    = "four_types"
	payloadColumn = "data"
)

// Output artifact names under the analysis output folder.
const (
	OutputDirName   = "analysis_outputs"
	ReportTxtName   = "analysis_report.txt"
	SummaryJSONName = "analysis_summary.json"
)

// ErrNoInput is returned when neither dataset can be resolved; with no
// data at all there is nothing to report.
var ErrNoInput = errors.New("neither series nor event dataset could be resolved")

type Config struct {
	InputFolder  string
	SeriesPath   string
	EventPath    string
	ConfigPath   string
	ExpectedStep int64 // seconds, 0 = infer
	EmitCSV      bool
	OutputFormat string // text, json, table
	Timezone     string
}

type Analyzer struct {
	config *Config
	stats  *PayloadStats
}

func New(config *Config) *Analyzer {
	return &Analyzer{
		config: config,
		stats:  NewPayloadStats(),
	}
}

// Run executes the full analysis and returns the assembled report.
func (a *Analyzer) Run() (*model.Report, error) {
	startTime := time.Now()
	util.LogInfo("Starting post-download analysis...")

	// Phase 1: Resolve input files
	resolveStart := time.Now()
	inputs, err := loader.Resolve(a.config.InputFolder, a.config.SeriesPath, a.config.EventPath)
	if err != nil {
		return nil, err
	}
	util.LogDebugf("Phase 1 - Input resolution duration: %v (series=%s, events=%s)",
		time.Since(resolveStart), inputs.SeriesPath, inputs.EventPath)

	outDir := filepath.Join(inputs.BaseDir, OutputDirName)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}

	// Phase 2: Load tables
	loadStart := time.Now()
	seriesTable, err := loader.LoadTable(inputs.SeriesPath)
	if err != nil {
		util.LogWarn(fmt.Sprintf("Failed to load series dataset: %v", err))
		seriesTable = nil
	}
	eventTable, err := loader.LoadTable(inputs.EventPath)
	if err != nil {
		util.LogWarn(fmt.Sprintf("Failed to load event dataset: %v", err))
		eventTable = nil
	}
	util.LogDebugf("Phase 2 - Table loading duration: %v (series rows=%d, event rows=%d)",
		time.Since(loadStart), seriesTable.Len(), eventTable.Len())

	if seriesTable == nil && eventTable == nil {
		return nil, ErrNoInput
	}

	cfg, err := config.Load(a.config.ConfigPath)
	if err != nil {
		util.LogWarn(fmt.Sprintf("Attribute config unusable, section disabled: %v", err))
		cfg = nil
	}

	// Phase 3: Parse payload cells once, shared by both event sections
	parseStart := time.Now()
	parsed := a.parsePayloads(eventTable)
	a.stats.PrintFinalStats()
	util.LogDebugf("Phase 3 - Payload parsing duration: %v", time.Since(parseStart))

	// Phase 4: Run the analyses
	analyzeStart := time.Now()
	report := &model.Report{
		GeneratedAt:    util.FormatTimestamp(util.GetTimeProvider().Now()),
		OutputDir:      outDir,
		TimestreamCSV:  inputs.SeriesPath,
		DynamoDBCSV:    inputs.EventPath,
		TimeContinuity: continuity.Analyze(seriesTable, timeColumn, a.config.ExpectedStep),
		CodeField:      analyzeCodeField(seriesTable),
		Demographics:   analyzeDemographics(eventTable, parsed),
		ConfigSummary:  analyzeWithConfig(eventTable, parsed, cfg),
	}
	util.LogDebugf("Phase 4 - Analysis duration: %v", time.Since(analyzeStart))

	// Phase 5: Write artifacts
	outputStart := time.Now()
	if err := a.writeArtifacts(outDir, report); err != nil {
		return nil, err
	}
	util.LogDebugf("Phase 5 - Artifact writing duration: %v", time.Since(outputStart))

	util.LogDebugf("Total duration: %v", time.Since(startTime))
	return report, nil
}

// FormatReport renders the report to stdout in the configured format.
func (a *Analyzer) FormatReport(report *model.Report) error {
	switch a.config.OutputFormat {
	case "json":
		return formatter.NewJSONFormatter().Format(report)
	case "table":
		return formatter.NewTableFormatter().Format(report)
	default:
		return formatter.NewTextFormatter().Format(report)
	}
}

// parsePayloads converts every payload cell of the event table. The slice
// is row-aligned; nil entries mark cells that yielded no structure.
func (a *Analyzer) parsePayloads(events *model.Table) []*model.Value {
	if events == nil || !events.HasColumn(payloadColumn) {
		return nil
	}
	cells := events.Column(payloadColumn)
	parsed := make([]*model.Value, len(cells))
	for i, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			a.stats.IncrementEmpty()
			continue
		}
		if v := payload.Parse(cell); v != nil {
			parsed[i] = v
			a.stats.IncrementParsed()
		} else {
			a.stats.IncrementFailure()
		}
	}
	return parsed
}

// analyzeCodeField summarizes the series table's fixed code column.
func analyzeCodeField(series *model.Table) *model.CodeFieldReport {
	if series.Len() == 0 || !series.HasColumn(codeColumn) {
		return &model.CodeFieldReport{
			Rows:    0,
			Message: "series " + codeColumn + " column not found",
		}
	}

	cells := series.Column(codeColumn)
	values := make([]*float64, len(cells))
	for i, cell := range cells {
		if f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil && !math.IsNaN(f) {
			v := f
			values[i] = &v
		}
	}

	dist := distribution.IntCodes(values, len(cells))
	return &model.CodeFieldReport{
		Rows:         len(cells),
		UniqueValues: len(dist),
		Distribution: dist,
	}
}

// analyzeDemographics extracts gender and age from every parsed payload
// and aggregates them.
func analyzeDemographics(events *model.Table, parsed []*model.Value) *model.DemographicReport {
	if events.Len() == 0 || !events.HasColumn(payloadColumn) {
		return &model.DemographicReport{
			Rows:    0,
			Message: "event " + payloadColumn + " column not found",
		}
	}

	total := events.Len()
	genders := make([]*string, total)
	ages := make([]*float64, total)
	parsedOK := 0
	for i := 0; i < total; i++ {
		if parsed[i] == nil {
			continue
		}
		demo := extract.Demographic(parsed[i])
		genders[i] = demo.Gender
		ages[i] = demo.Age
		if demo.Gender != nil || demo.Age != nil {
			parsedOK++
		}
	}

	var agesPresent []float64
	for _, a := range ages {
		if a != nil {
			agesPresent = append(agesPresent, *a)
		}
	}

	stats := &model.AgeStats{
		Rows:         total,
		ParsedOkRows: parsedOK,
		AgeNonNull:   len(agesPresent),
	}
	if len(agesPresent) > 0 {
		min, max, mean, median := distribution.Stats(agesPresent)
		stats.AgeMin = &min
		stats.AgeMax = &max
		stats.AgeMean = &mean
		stats.AgeMedian = &median
	}

	previewLen := total
	if previewLen > 5 {
		previewLen = 5
	}
	preview := make([]model.PreviewRow, 0, previewLen)
	for i := 0; i < previewLen; i++ {
		preview = append(preview, model.PreviewRow{
			ParsedGender: genders[i],
			ParsedAge:    ages[i],
		})
	}

	return &model.DemographicReport{
		Rows:               total,
		GenderDistribution: distribution.Genders(genders, total),
		AgeStats:           stats,
		AgeBuckets:         distribution.AgeBuckets(agesPresent, total),
		Preview:            preview,
	}
}

// analyzeWithConfig summarizes every configured attribute over the parsed
// payloads. Rows whose payload failed to parse, or whose value fails
// coercion, contribute to the NA bucket (or are excluded from numeric
// stats) without aborting anything.
func analyzeWithConfig(events *model.Table, parsed []*model.Value, cfg *config.Config) *model.ConfigReport {
	if events.Len() == 0 || !events.HasColumn(payloadColumn) {
		return &model.ConfigReport{
			Enabled: false,
			Message: "event " + payloadColumn + " column not found",
		}
	}
	if cfg == nil || len(cfg.Attributes) == 0 {
		return &model.ConfigReport{Enabled: false}
	}

	total := events.Len()
	report := &model.ConfigReport{Enabled: true}

	for _, attr := range cfg.Attributes {
		kind := attr.Kind()
		entry := model.AttributeReport{Name: attr.Name, Type: kind}

		switch kind {
		case config.KindBool:
			values := make([]*bool, total)
			for i, v := range parsed {
				if v != nil {
					values[i] = extract.CoerceBool(extract.Resolve(v, attr.Keys, attr.ValueKey))
				}
			}
			entry.Summary = distribution.Booleans(values, total)
		case config.KindNumber:
			values := make([]*float64, total)
			for i, v := range parsed {
				if v != nil {
					values[i] = extract.CoerceNumber(extract.Resolve(v, attr.Keys, attr.ValueKey))
				}
			}
			entry.Summary = distribution.Numeric(values, total)
		default:
			values := make([]*string, total)
			for i, v := range parsed {
				if v != nil {
					values[i] = extract.CoerceCategory(extract.Resolve(v, attr.Keys, attr.ValueKey))
				}
			}
			entry.Summary = distribution.Categorical(values, total)
		}

		report.Attributes = append(report.Attributes, entry)
	}

	return report
}

// writeArtifacts writes the text report, the JSON summary, and the
// optional derived CSVs.
func (a *Analyzer) writeArtifacts(outDir string, report *model.Report) error {
	text := formatter.NewTextFormatter().Render(report)
	reportPath := filepath.Join(outDir, ReportTxtName)
	if err := os.WriteFile(reportPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	data, err := formatter.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	summaryPath := filepath.Join(outDir, SummaryJSONName)
	if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	util.LogInfo(fmt.Sprintf("Report written: %s, %s", reportPath, summaryPath))

	if a.config.EmitCSV {
		if err := formatter.WriteCSVExports(outDir, report); err != nil {
			return fmt.Errorf("write derived exports: %w", err)
		}
	}
	return nil
}
