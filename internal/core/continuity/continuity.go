// Package continuity checks a nominally periodic time series for gaps.
package continuity

import (
	"math"
	"sort"
	"time"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
	"github.com/penwyp/go-sensor-verify/internal/util"
)

// Analyze infers the sampling step of the series table's timestamp column
// (unless expectedStepSeconds is > 0) and reports every interval that
// exceeds it. All failure modes are soft: the returned report always
// carries a Message explaining any absent statistics.
func Analyze(tbl *model.Table, column string, expectedStepSeconds int64) *model.ContinuityReport {
	if tbl.Len() == 0 || !tbl.HasColumn(column) {
		return &model.ContinuityReport{
			Rows:    0,
			Message: "series " + column + " column not found",
		}
	}

	times := parseTimes(tbl.Column(column))
	report := &model.ContinuityReport{Rows: len(times)}

	step := expectedStepSeconds
	if step <= 0 {
		step = InferStep(times)
	}
	if step > 0 {
		report.ExpectedStepSeconds = &step
	}

	if step <= 0 || len(times) < 2 {
		report.Message = "not enough samples or expected step could not be inferred"
		return report
	}

	var gaps []model.GapRecord
	missingTotal := 0
	for i := 1; i < len(times); i++ {
		delta := roundSeconds(times[i].Sub(times[i-1]))
		if delta <= step {
			continue
		}
		missing := int(math.Round(float64(delta)/float64(step))) - 1
		if missing < 0 {
			missing = 0
		}
		missingTotal += missing
		gaps = append(gaps, model.GapRecord{
			PrevTime:         util.FormatTimestamp(times[i-1]),
			NextTime:         util.FormatTimestamp(times[i]),
			GapSeconds:       delta,
			MissingPointsEst: missing,
		})
	}

	span := roundSeconds(times[len(times)-1].Sub(times[0]))
	expected := int(math.Round(float64(span)/float64(step))) + 1
	if expected < len(times) {
		expected = len(times)
	}

	report.FirstTime = util.FormatTimestamp(times[0])
	report.LastTime = util.FormatTimestamp(times[len(times)-1])
	report.ObservedPoints = len(times)
	report.ExpectedPointsEst = expected
	report.GapCount = len(gaps)
	report.MissingPointsTotalEst = missingTotal
	report.Gaps = gaps
	if expected > 0 {
		report.ContinuityRatioEst = float64(len(times)) / float64(expected)
	} else {
		report.ContinuityRatioEst = 1.0
	}
	return report
}

// InferStep returns the most frequent positive consecutive difference of
// the (sorted) series, in seconds. Ties break toward the smaller delta,
// the conservative choice for gap counting. Returns 0 when no positive
// delta exists.
func InferStep(sorted []time.Time) int64 {
	counts := make(map[int64]int)
	for i := 1; i < len(sorted); i++ {
		d := roundSeconds(sorted[i].Sub(sorted[i-1]))
		if d > 0 {
			counts[d]++
		}
	}
	var best int64
	bestCount := 0
	for d, c := range counts {
		if c > bestCount || (c == bestCount && bestCount > 0 && d < best) {
			best = d
			bestCount = c
		}
	}
	return best
}

// parseTimes coerces the raw cells, drops the unparseable ones, and sorts
// ascending. Duplicate timestamps are kept; they read as a zero delta.
func parseTimes(cells []string) []time.Time {
	times := make([]time.Time, 0, len(cells))
	for _, c := range cells {
		if t, ok := util.ParseTimestamp(c); ok {
			times = append(times, t)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

func roundSeconds(d time.Duration) int64 {
	return int64(math.Round(d.Seconds()))
}
