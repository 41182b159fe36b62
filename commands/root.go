package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-sensor-verify/internal/analyzer"
	"github.com/penwyp/go-sensor-verify/internal/util"
)

var (
	// Logging related
	debug bool

	// Input data
	inputFolder string
	seriesCSV   string
	eventCSV    string

	// Analysis configuration
	expectedStep int64
	configPath   string

	// Output related
	outputFormat string
	timezone     string
	emitCSV      bool

	rootCmd = &cobra.Command{
		Use:   "go-sensor-verify [flags]",
		Short: "Post-download sensor data verification tool",
		Long: `go-sensor-verify analyzes a downloaded sensor/event export pair and
reports time continuity, code-field distribution, payload demographics,
and configured attribute summaries.

Examples:
  go-sensor-verify --input-folder /path/to/download             # Auto-detect the export pair
  go-sensor-verify --timestream s.csv --dynamodb e.csv          # Explicit dataset paths
  go-sensor-verify -i /path/to/download --step 10               # Fixed 10s sampling step
  go-sensor-verify -i /path/to/download --config attrs.json     # Configured attribute summaries
  go-sensor-verify -i /path/to/download --emit-csv -o table     # Derived CSVs, table output`,
		RunE: runAnalyze,
	}
)

const defaultLogFile = "~/.go-sensor-verify/logs/app.log"

func init() {
	// Input data configuration
	rootCmd.Flags().StringVarP(&inputFolder, "input-folder", "i", "",
		"Download folder (auto-detects *_timestream.csv / *_dynamodb.csv)")
	rootCmd.Flags().StringVar(&seriesCSV, "timestream", "",
		"Series export CSV path (overrides auto-detection)")
	rootCmd.Flags().StringVar(&eventCSV, "dynamodb", "",
		"Event export CSV path (overrides auto-detection)")

	// Analysis configuration
	rootCmd.Flags().Int64Var(&expectedStep, "step", 0,
		"Expected sampling step in seconds (0 = infer from the data)")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Attribute extraction config (JSON or YAML)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format (text, json, table)")
	rootCmd.Flags().BoolVar(&emitCSV, "emit-csv", false,
		"Write derived CSV exports (off by default)")
	rootCmd.Flags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
	if err := util.InitializeTimeProvider(timezone); err != nil {
		return err
	}

	config := &analyzer.Config{
		InputFolder:  expandPath(inputFolder),
		SeriesPath:   expandPath(seriesCSV),
		EventPath:    expandPath(eventCSV),
		ConfigPath:   expandPath(configPath),
		ExpectedStep: expectedStep,
		EmitCSV:      emitCSV,
		OutputFormat: outputFormat,
		Timezone:     timezone,
	}

	a := analyzer.New(config)
	report, err := a.Run()
	if err != nil {
		return err
	}
	return a.FormatReport(report)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
