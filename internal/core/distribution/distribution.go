// Package distribution turns extracted columns into frequency tables and
// descriptive statistics.
package distribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
)

// NALabel groups rows that contributed no value. Absent rows are counted,
// not dropped, so every summary accounts for the full table.
const NALabel = "NA"

// Categorical builds a frequency table over free-text values, ordered by
// descending count with first-seen order breaking ties. Percent is
// computed against totalRows, the original table length.
func Categorical(values []*string, totalRows int) []model.DistributionEntry {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		label := NALabel
		if v != nil {
			label = *v
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	out := make([]model.DistributionEntry, 0, len(order))
	for _, label := range order {
		out = append(out, model.DistributionEntry{
			Value:   label,
			Count:   counts[label],
			Percent: Percent(counts[label], totalRows),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Booleans summarizes a boolean column the same way. Labels render as
// "True"/"False"; the casing is part of the summary file contract.
func Booleans(values []*bool, totalRows int) []model.DistributionEntry {
	strs := make([]*string, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		s := "False"
		if *v {
			s = "True"
		}
		strs[i] = &s
	}
	return Categorical(strs, totalRows)
}

// Genders builds the gender section's frequency table.
func Genders(values []*string, totalRows int) []model.GenderEntry {
	entries := Categorical(values, totalRows)
	out := make([]model.GenderEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.GenderEntry{Gender: e.Value, Count: e.Count, Percent: e.Percent})
	}
	return out
}

// IntCodes builds the fixed code-field distribution, ordered by ascending
// value with the NA bucket last. Distinct numeric values count as
// distinct buckets; only the rendered label truncates to int.
func IntCodes(values []*float64, totalRows int) []model.CodeEntry {
	counts := make(map[float64]int)
	naCount := 0
	for _, v := range values {
		if v == nil {
			naCount++
			continue
		}
		counts[*v]++
	}

	codes := make([]float64, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Float64s(codes)

	out := make([]model.CodeEntry, 0, len(codes)+1)
	for _, c := range codes {
		code := int(c)
		out = append(out, model.CodeEntry{
			Code:    &code,
			Count:   counts[c],
			Percent: Percent(counts[c], totalRows),
		})
	}
	if naCount > 0 {
		out = append(out, model.CodeEntry{
			Code:    nil,
			Count:   naCount,
			Percent: Percent(naCount, totalRows),
		})
	}
	return out
}

// Numeric reports descriptive statistics over the non-null values of a
// number column, with the non-null count surfaced separately.
func Numeric(values []*float64, totalRows int) *model.NumericSummary {
	var present []float64
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	summary := &model.NumericSummary{Rows: totalRows, NonNull: len(present)}
	if len(present) == 0 {
		return summary
	}
	min, max, mean, med := Stats(present)
	summary.Min = &min
	summary.Max = &max
	summary.Mean = &mean
	summary.Median = &med
	return summary
}

// AgeBuckets discretizes ages into single-year buckets over 0..120,
// ordered ascending. Percent is against totalRows.
func AgeBuckets(ages []float64, totalRows int) []model.AgeBucket {
	counts := make(map[int]int)
	for _, a := range ages {
		y := int(a)
		if y < 0 || y > 120 {
			continue
		}
		counts[y]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]model.AgeBucket, 0, len(years))
	for _, y := range years {
		out = append(out, model.AgeBucket{
			AgeBucket: fmt.Sprintf("%02d", y),
			Count:     counts[y],
			Percent:   Percent(counts[y], totalRows),
		})
	}
	return out
}

// Stats returns min, max, mean, and median over a non-empty sample.
func Stats(vals []float64) (min, max, mean, median float64) {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	min = s[0]
	max = s[len(s)-1]
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	mean = sum / float64(len(s))
	mid := len(s) / 2
	if len(s)%2 == 1 {
		median = s[mid]
	} else {
		median = (s[mid-1] + s[mid]) / 2
	}
	return
}

// Percent computes count/total as a percentage rounded to two decimals.
// A zero total reads as 0 rather than dividing by zero.
func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}
