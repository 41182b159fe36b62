package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
	"github.com/penwyp/go-sensor-verify/internal/util"
)

// Derived CSV export filenames.
const (
	GapsCSV      = "timestream_time_gaps.csv"
	CodeFieldCSV = "timestream_four_types_percentage.csv"
	GenderCSV    = "dynamodb_gender_distribution.csv"
	AgeBucketCSV = "dynamodb_age_buckets.csv"
)

// WriteCSVExports writes the derived tabular exports into outDir. Each
// file is written only when its section produced rows; with nothing to
// export no file appears at all.
func WriteCSVExports(outDir string, report *model.Report) error {
	if tc := report.TimeContinuity; tc != nil && len(tc.Gaps) > 0 {
		rows := make([][]string, 0, len(tc.Gaps))
		for _, g := range tc.Gaps {
			rows = append(rows, []string{
				g.PrevTime, g.NextTime,
				fmt.Sprintf("%d", g.GapSeconds), fmt.Sprintf("%d", g.MissingPointsEst),
			})
		}
		if err := writeCSV(filepath.Join(outDir, GapsCSV),
			[]string{"prev_time", "next_time", "gap_seconds", "missing_points_est"}, rows); err != nil {
			return err
		}
	}

	if cf := report.CodeField; cf != nil && len(cf.Distribution) > 0 {
		rows := make([][]string, 0, len(cf.Distribution))
		for _, e := range cf.Distribution {
			label := ""
			if e.Code != nil {
				label = fmt.Sprintf("%d", *e.Code)
			}
			rows = append(rows, []string{label, fmt.Sprintf("%d", e.Count), util.FormatFloat(e.Percent)})
		}
		if err := writeCSV(filepath.Join(outDir, CodeFieldCSV),
			[]string{"four_types", "count", "percent"}, rows); err != nil {
			return err
		}
	}

	if dj := report.Demographics; dj != nil {
		if len(dj.GenderDistribution) > 0 {
			rows := make([][]string, 0, len(dj.GenderDistribution))
			for _, g := range dj.GenderDistribution {
				rows = append(rows, []string{g.Gender, fmt.Sprintf("%d", g.Count), util.FormatFloat(g.Percent)})
			}
			if err := writeCSV(filepath.Join(outDir, GenderCSV),
				[]string{"gender", "count", "percent"}, rows); err != nil {
				return err
			}
		}
		if len(dj.AgeBuckets) > 0 {
			rows := make([][]string, 0, len(dj.AgeBuckets))
			for _, b := range dj.AgeBuckets {
				rows = append(rows, []string{b.AgeBucket, fmt.Sprintf("%d", b.Count), util.FormatFloat(b.Percent)})
			}
			if err := writeCSV(filepath.Join(outDir, AgeBucketCSV),
				[]string{"age_bucket", "count", "percent"}, rows); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
