package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtrs(vals ...string) []*string {
	out := make([]*string, 0, len(vals))
	for _, v := range vals {
		if v == "<nil>" {
			out = append(out, nil)
			continue
		}
		s := v
		out = append(out, &s)
	}
	return out
}

func TestCategoricalOrderingAndNA(t *testing.T) {
	vals := strPtrs("b", "a", "<nil>", "b", "a", "b")
	entries := Categorical(vals, len(vals))

	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].Value)
	assert.Equal(t, 3, entries[0].Count)
	assert.Equal(t, "a", entries[1].Value)
	assert.Equal(t, 2, entries[1].Count)
	assert.Equal(t, NALabel, entries[2].Value)
	assert.Equal(t, 1, entries[2].Count)

	assert.InDelta(t, 50.0, entries[0].Percent, 1e-9)
	assert.InDelta(t, 33.33, entries[1].Percent, 1e-9)
	assert.InDelta(t, 16.67, entries[2].Percent, 1e-9)
}

func TestCategoricalTieKeepsFirstSeen(t *testing.T) {
	entries := Categorical(strPtrs("zebra", "apple", "zebra", "apple"), 4)
	require.Len(t, entries, 2)
	assert.Equal(t, "zebra", entries[0].Value)
	assert.Equal(t, "apple", entries[1].Value)
}

func TestCategoricalPercentSumsToWhole(t *testing.T) {
	vals := strPtrs("x", "y", "y", "z", "<nil>", "x", "x")
	entries := Categorical(vals, len(vals))
	sum := 0.0
	for _, e := range entries {
		sum += e.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestCategoricalEmpty(t *testing.T) {
	assert.Empty(t, Categorical(nil, 0))
}

func TestBooleans(t *testing.T) {
	tr, fa := true, false
	entries := Booleans([]*bool{&tr, &fa, &tr, nil}, 4)
	require.Len(t, entries, 3)
	assert.Equal(t, "True", entries[0].Value)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, "False", entries[1].Value)
	assert.Equal(t, NALabel, entries[2].Value)
	assert.InDelta(t, 25.0, entries[2].Percent, 1e-9)
}

func TestGenders(t *testing.T) {
	entries := Genders(strPtrs("Male", "Female", "Male", "<nil>"), 4)
	require.Len(t, entries, 3)
	assert.Equal(t, "Male", entries[0].Gender)
	assert.Equal(t, 2, entries[0].Count)
	assert.InDelta(t, 50.0, entries[0].Percent, 1e-9)
	assert.Equal(t, NALabel, entries[2].Gender)
}

func codePtrs(codes ...float64) []*float64 {
	out := make([]*float64, 0, len(codes))
	for i := range codes {
		out = append(out, &codes[i])
	}
	return out
}

func TestIntCodesAscendingWithNALast(t *testing.T) {
	vals := append(codePtrs(3, 1, 3, 2, 1, 1), nil, nil)

	entries := IntCodes(vals, len(vals))
	require.Len(t, entries, 4)
	require.NotNil(t, entries[0].Code)
	assert.Equal(t, 1, *entries[0].Code)
	assert.Equal(t, 3, entries[0].Count)
	assert.Equal(t, 2, *entries[1].Code)
	assert.Equal(t, 3, *entries[2].Code)
	assert.Nil(t, entries[3].Code)
	assert.Equal(t, 2, entries[3].Count)
	assert.InDelta(t, 25.0, entries[3].Percent, 1e-9)
}

func TestIntCodesDistinctFractionalValues(t *testing.T) {
	// 1.1 and 1.9 stay separate buckets; only the label truncates.
	entries := IntCodes(codePtrs(1.1, 1.9, 1.1), 3)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Code)
	assert.Equal(t, 1, *entries[0].Code)
	assert.Equal(t, 2, entries[0].Count)
	require.NotNil(t, entries[1].Code)
	assert.Equal(t, 1, *entries[1].Code)
	assert.Equal(t, 1, entries[1].Count)
}

func TestIntCodesNoNABucketWhenAllPresent(t *testing.T) {
	entries := IntCodes(codePtrs(1, 1), 2)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Code)
	assert.InDelta(t, 100.0, entries[0].Percent, 1e-9)
}

func TestNumeric(t *testing.T) {
	mk := func(v float64) *float64 { return &v }
	summary := Numeric([]*float64{mk(4), nil, mk(1), mk(3)}, 4)
	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 3, summary.NonNull)
	require.NotNil(t, summary.Min)
	assert.Equal(t, 1.0, *summary.Min)
	assert.Equal(t, 4.0, *summary.Max)
	assert.InDelta(t, 8.0/3.0, *summary.Mean, 1e-9)
	assert.Equal(t, 3.0, *summary.Median)
}

func TestNumericAllNull(t *testing.T) {
	summary := Numeric([]*float64{nil, nil}, 2)
	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, 0, summary.NonNull)
	assert.Nil(t, summary.Min)
	assert.Nil(t, summary.Mean)
}

func TestAgeBuckets(t *testing.T) {
	entries := AgeBuckets([]float64{25.9, 25.0, 7, 130, -1, 120}, 6)
	require.Len(t, entries, 3)
	assert.Equal(t, "07", entries[0].AgeBucket)
	assert.Equal(t, 1, entries[0].Count)
	assert.Equal(t, "25", entries[1].AgeBucket)
	assert.Equal(t, 2, entries[1].Count)
	assert.Equal(t, "120", entries[2].AgeBucket)
	assert.InDelta(t, 33.33, entries[1].Percent, 1e-9)
}

func TestStats(t *testing.T) {
	tests := []struct {
		name                  string
		vals                  []float64
		min, max, mean, median float64
	}{
		{"odd count", []float64{3, 1, 2}, 1, 3, 2, 2},
		{"even count", []float64{10, 20, 40, 30}, 10, 40, 25, 25},
		{"single", []float64{5}, 5, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, mean, median := Stats(tt.vals)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
			assert.InDelta(t, tt.mean, mean, 1e-9)
			assert.Equal(t, tt.median, median)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 33.33, Percent(1, 3), 1e-9)
	assert.InDelta(t, 66.67, Percent(2, 3), 1e-9)
	assert.InDelta(t, 100.0, Percent(3, 3), 1e-9)
	assert.Equal(t, 0.0, Percent(1, 0))
}
