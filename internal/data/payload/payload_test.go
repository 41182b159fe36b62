package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
)

func TestParseStrictJSON(t *testing.T) {
	v := Parse(`{"gender": "male", "age": 30}`)
	require.NotNil(t, v)
	assert.Equal(t, model.KindMapping, v.Kind())

	age, ok := v.Field("age").AsFloat()
	require.True(t, ok)
	assert.Equal(t, 30.0, age)

	gender, ok := v.Field("gender").AsString()
	require.True(t, ok)
	assert.Equal(t, "male", gender)
}

func TestParseNormalized(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{"single quotes", `{'gender': 'female', 'age': 25}`},
		{"python booleans", `{'smile': True, 'mask': False, 'note': None}`},
		{"mixed quoting", `{'items': [{'ok': True}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Parse(tt.cell)
			require.NotNil(t, v)
			assert.True(t, v.IsContainer())
		})
	}
}

func TestParseNormalizedTokens(t *testing.T) {
	v := Parse(`{'smile': True, 'mask': False, 'note': None}`)
	require.NotNil(t, v)

	smile, ok := v.Field("smile").AsBool()
	require.True(t, ok)
	assert.True(t, smile)

	mask, ok := v.Field("mask").AsBool()
	require.True(t, ok)
	assert.False(t, mask)

	assert.Equal(t, model.KindNull, v.Field("note").Kind())
}

func TestParseDecimalWrapper(t *testing.T) {
	v := Parse(`{"age": Decimal("42"), "score": Decimal('0.75')}`)
	require.NotNil(t, v)

	age, ok := v.Field("age").AsFloat()
	require.True(t, ok)
	assert.Equal(t, 42.0, age)

	score, ok := v.Field("score").AsFloat()
	require.True(t, ok)
	assert.Equal(t, 0.75, score)
}

func TestParsePermissiveLiteral(t *testing.T) {
	// Apostrophe inside a single-quoted cell breaks the normalized stage;
	// only the permissive reader gets this one right.
	v := Parse(`{"note": "it's fine", 'age': 20,}`)
	require.NotNil(t, v)

	note, ok := v.Field("note").AsString()
	require.True(t, ok)
	assert.Equal(t, "it's fine", note)

	age, ok := v.Field("age").AsFloat()
	require.True(t, ok)
	assert.Equal(t, 20.0, age)
}

func TestParseEquivalenceAcrossStages(t *testing.T) {
	// The same logical structure must come out identical regardless of
	// which stage matched.
	cells := []string{
		`{"a": [1, 2], "b": true, "c": null}`,
		`{'a': [1, 2], 'b': True, 'c': None}`,
	}

	var results []any
	for _, cell := range cells {
		v := Parse(cell)
		require.NotNil(t, v, "cell %q", cell)
		results = append(results, v.Interface())
	}
	assert.Equal(t, results[0], results[1])
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"bare scalar number", "42"},
		{"bare scalar string", `"hello"`},
		{"quoted scalar", "'hello'"},
		{"garbage", "not a payload at all {"},
		{"truncated mapping", `{"a": 1`},
		{"truncated sequence", `[1, 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Parse(tt.cell))
		})
	}
}

func TestParseNeverPartial(t *testing.T) {
	// A cell that starts like a mapping but breaks mid-way must yield
	// nothing, not a truncated structure.
	v := Parse(`{"a": 1, "b": }`)
	assert.Nil(t, v)
}

func TestParseKeyOrderPreserved(t *testing.T) {
	v := Parse(`{"z": 1, "a": 2, "m": 3}`)
	require.NotNil(t, v)
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
}

func TestParseNestedSequences(t *testing.T) {
	v := Parse(`[{"id": 1}, {"id": 2}]`)
	require.NotNil(t, v)
	require.Equal(t, model.KindSequence, v.Kind())
	assert.Len(t, v.Items(), 2)
}
