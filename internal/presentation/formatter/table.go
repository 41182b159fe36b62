package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
	"github.com/penwyp/go-sensor-verify/internal/util"
)

// TableFormatter renders the report's distributions as aligned tables.
type TableFormatter struct {
	out io.Writer
}

// NewTableFormatter creates a new instance of TableFormatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{out: os.Stdout}
}

// Format writes each report section as a table.
func (f *TableFormatter) Format(report *model.Report) error {
	fmt.Fprintf(f.out, "Generated at: %s\n\n", report.GeneratedAt)

	if tc := report.TimeContinuity; tc != nil && tc.Message == "" {
		fmt.Fprintln(f.out, "Time gaps:")
		f.render([]string{"Prev", "Next", "Gap (s)", "Missing (est)"}, func(add func(...string)) {
			for _, g := range tc.Gaps {
				add(g.PrevTime, g.NextTime, fmt.Sprintf("%d", g.GapSeconds), fmt.Sprintf("%d", g.MissingPointsEst))
			}
		})
		fmt.Fprintln(f.out)
	}

	if cf := report.CodeField; cf != nil && cf.Message == "" {
		fmt.Fprintln(f.out, "four_types distribution:")
		f.render([]string{"Value", "Count", "Percent"}, func(add func(...string)) {
			for _, e := range cf.Distribution {
				label := "NA"
				if e.Code != nil {
					label = fmt.Sprintf("%d", *e.Code)
				}
				add(label, fmt.Sprintf("%d", e.Count), util.FormatPercent(e.Percent))
			}
		})
		fmt.Fprintln(f.out)
	}

	if dj := report.Demographics; dj != nil && dj.Message == "" {
		fmt.Fprintln(f.out, "Gender distribution:")
		f.render([]string{"Gender", "Count", "Percent"}, func(add func(...string)) {
			for _, g := range dj.GenderDistribution {
				add(g.Gender, fmt.Sprintf("%d", g.Count), util.FormatPercent(g.Percent))
			}
		})
		fmt.Fprintln(f.out)

		if len(dj.AgeBuckets) > 0 {
			fmt.Fprintln(f.out, "Age buckets:")
			f.render([]string{"Age", "Count", "Percent"}, func(add func(...string)) {
				for _, b := range dj.AgeBuckets {
					add(b.AgeBucket, fmt.Sprintf("%d", b.Count), util.FormatPercent(b.Percent))
				}
			})
			fmt.Fprintln(f.out)
		}
	}

	if dc := report.ConfigSummary; dc != nil && dc.Enabled {
		for _, attr := range dc.Attributes {
			entries, ok := attr.Summary.([]model.DistributionEntry)
			if !ok {
				continue
			}
			fmt.Fprintf(f.out, "Attribute %s (%s):\n", attr.Name, attr.Type)
			f.render([]string{"Value", "Count", "Percent"}, func(add func(...string)) {
				for _, e := range entries {
					add(e.Value, fmt.Sprintf("%d", e.Count), util.FormatPercent(e.Percent))
				}
			})
			fmt.Fprintln(f.out)
		}
	}

	return nil
}

func (f *TableFormatter) render(headers []string, fill func(add func(cols ...string))) {
	tw := tablewriter.NewWriter(f.out)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}
