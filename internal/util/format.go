package util

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatCount renders a row count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatFloat renders a float in its shortest form (30, 25.5).
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatOptFloat renders a possibly-absent float, using "-" for absent.
func FormatOptFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return FormatFloat(*f)
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + "%"
}
