package formatter

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
	"github.com/penwyp/go-sensor-verify/internal/util"
)

// maxGapLines caps the gap list in the text form; the full list stays in
// the structured report.
const maxGapLines = 10

// TextFormatter renders the report's deterministic plain-text projection.
type TextFormatter struct{}

// NewTextFormatter creates a new instance of TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format writes the text rendering to stdout.
func (f *TextFormatter) Format(report *model.Report) error {
	fmt.Print(f.Render(report))
	return nil
}

// Render produces the full text form. Every line is a projection of the
// structured report; sections appear in a fixed order.
func (f *TextFormatter) Render(report *model.Report) string {
	var b strings.Builder

	b.WriteString("=== Post-Download Analysis Report ===\n")
	fmt.Fprintf(&b, "Generated at: %s\n\n", report.GeneratedAt)

	f.renderContinuity(&b, report.TimeContinuity)
	f.renderCodeField(&b, report.CodeField)
	f.renderDemographics(&b, report.Demographics)
	f.renderConfigSummary(&b, report.ConfigSummary)

	return b.String()
}

func (f *TextFormatter) renderContinuity(b *strings.Builder, tc *model.ContinuityReport) {
	b.WriteString("[1] Series time continuity\n")
	if tc == nil {
		b.WriteString("- No data\n\n")
		return
	}
	fmt.Fprintf(b, "- Rows: %s\n", util.FormatCount(tc.Rows))
	if tc.ExpectedStepSeconds != nil {
		fmt.Fprintf(b, "- Expected step seconds: %d\n", *tc.ExpectedStepSeconds)
	}
	if tc.Message != "" {
		fmt.Fprintf(b, "- Note: %s\n\n", tc.Message)
		return
	}
	fmt.Fprintf(b, "- First time: %s\n", tc.FirstTime)
	fmt.Fprintf(b, "- Last time: %s\n", tc.LastTime)
	fmt.Fprintf(b, "- Observed points: %s\n", util.FormatCount(tc.ObservedPoints))
	fmt.Fprintf(b, "- Expected points (est): %s\n", util.FormatCount(tc.ExpectedPointsEst))
	fmt.Fprintf(b, "- Gap count: %d\n", tc.GapCount)
	fmt.Fprintf(b, "- Missing points (est): %d\n", tc.MissingPointsTotalEst)
	fmt.Fprintf(b, "- Continuity ratio (est): %.1f %%\n", tc.ContinuityRatioEst*100)
	if len(tc.Gaps) > 0 {
		fmt.Fprintf(b, "  Gaps (first %d):\n", maxGapLines)
		for i, g := range tc.Gaps {
			if i >= maxGapLines {
				break
			}
			fmt.Fprintf(b, "    - prev=%s, next=%s, gap_s=%d, missing~%d\n",
				g.PrevTime, g.NextTime, g.GapSeconds, g.MissingPointsEst)
		}
	}
	b.WriteString("\n")
}

func (f *TextFormatter) renderCodeField(b *strings.Builder, cf *model.CodeFieldReport) {
	b.WriteString("[2] four_types distribution\n")
	if cf == nil {
		b.WriteString("- No data\n\n")
		return
	}
	if cf.Message != "" {
		fmt.Fprintf(b, "- Note: %s\n\n", cf.Message)
		return
	}
	fmt.Fprintf(b, "- Rows: %s, unique values: %d\n", util.FormatCount(cf.Rows), cf.UniqueValues)
	for _, e := range cf.Distribution {
		label := "NA"
		if e.Code != nil {
			label = fmt.Sprintf("%d", *e.Code)
		}
		fmt.Fprintf(b, "  - value=%s, count=%d, percent=%s\n", label, e.Count, util.FormatPercent(e.Percent))
	}
	b.WriteString("\n")
}

func (f *TextFormatter) renderDemographics(b *strings.Builder, dj *model.DemographicReport) {
	b.WriteString("[3] Payload demographics (gender / age)\n")
	if dj == nil {
		b.WriteString("- No data\n\n")
		return
	}
	if dj.Message != "" {
		fmt.Fprintf(b, "- Note: %s\n\n", dj.Message)
		return
	}
	fmt.Fprintf(b, "- Rows: %s\n", util.FormatCount(dj.Rows))
	b.WriteString("  Gender distribution:\n")
	for _, g := range dj.GenderDistribution {
		fmt.Fprintf(b, "    - %s: %d (%s)\n", g.Gender, g.Count, util.FormatPercent(g.Percent))
	}
	if s := dj.AgeStats; s != nil {
		b.WriteString("  Age statistics:\n")
		fmt.Fprintf(b, "    - non-null: %d, min: %s, max: %s, mean: %s, median: %s\n",
			s.AgeNonNull, util.FormatOptFloat(s.AgeMin), util.FormatOptFloat(s.AgeMax),
			util.FormatOptFloat(s.AgeMean), util.FormatOptFloat(s.AgeMedian))
	}
	if len(dj.AgeBuckets) > 0 {
		b.WriteString("  Age distribution (single-year buckets):\n")
		for _, bucket := range dj.AgeBuckets {
			fmt.Fprintf(b, "    - %s: %d (%s)\n", bucket.AgeBucket, bucket.Count, util.FormatPercent(bucket.Percent))
		}
	}
	if len(dj.Preview) > 0 {
		fmt.Fprintf(b, "  Extraction preview (first %d rows):\n", len(dj.Preview))
		for i, row := range dj.Preview {
			gender := "-"
			if row.ParsedGender != nil {
				gender = *row.ParsedGender
			}
			fmt.Fprintf(b, "    - #%d: gender=%s, age=%s\n", i+1, gender, util.FormatOptFloat(row.ParsedAge))
		}
	}
	b.WriteString("\n")
}

func (f *TextFormatter) renderConfigSummary(b *strings.Builder, dc *model.ConfigReport) {
	b.WriteString("[4] Configured attribute summary\n")
	if dc == nil || !dc.Enabled {
		b.WriteString("- No configuration\n")
		return
	}
	for _, attr := range dc.Attributes {
		fmt.Fprintf(b, "- Attribute: %s (%s)\n", attr.Name, attr.Type)
		switch summary := attr.Summary.(type) {
		case []model.DistributionEntry:
			for _, e := range summary {
				fmt.Fprintf(b, "    - %s: %d (%s)\n", e.Value, e.Count, util.FormatPercent(e.Percent))
			}
		case *model.NumericSummary:
			fmt.Fprintf(b, "    - non-null: %d, min: %s, max: %s, mean: %s, median: %s\n",
				summary.NonNull, util.FormatOptFloat(summary.Min), util.FormatOptFloat(summary.Max),
				util.FormatOptFloat(summary.Mean), util.FormatOptFloat(summary.Median))
		}
	}
}
