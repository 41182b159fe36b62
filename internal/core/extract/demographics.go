// Package extract walks parsed payload trees and pulls out named
// attributes regardless of nesting depth or shape.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
)

// Demographics is the per-row extraction result. Nil fields mean the
// payload carried no usable value.
type Demographics struct {
	Gender *string
	Age    *float64
}

var (
	genderKeys = map[string]bool{
		"gender": true, "sex": true, "性別": true, "性别": true,
	}
	ageKeys = map[string]bool{
		"age": true, "age_years": true, "agey": true, "years": true,
		"年齢": true, "年龄": true,
	}
	genderCanonical = map[string]string{
		"m": "Male", "male": "Male", "man": "Male", "男性": "Male",
		"f": "Female", "female": "Female", "woman": "Female", "女性": "Female",
	}
	firstNumber = regexp.MustCompile(`(\d+(\.\d+)?)`)
)

// Demographic collects gender and age from an arbitrarily nested payload.
// Traversal is depth-first in document order. For gender the last mention
// wins; ages are collected from every detector mention and reduced to
// their median so one noisy reading does not skew the row.
func Demographic(root *model.Value) Demographics {
	var gender *string
	var ages []float64

	model.EachPair(root, func(key string, val *model.Value) {
		kl := strings.ToLower(key)

		if genderKeys[kl] {
			if g, ok := genderValue(val); ok {
				gender = &g
			}
		}

		if ageKeys[kl] {
			if a, ok := ageValue(val); ok {
				ages = append(ages, a)
			}
		}

		if key == "AgeRange" || key == "age_range" {
			if a, ok := ageRangeValue(val); ok {
				ages = append(ages, a)
			}
		}
	})

	out := Demographics{}
	if gender != nil {
		g := CanonicalGender(*gender)
		out.Gender = &g
	}
	if len(ages) > 0 {
		m := median(ages)
		out.Age = &m
	}
	return out
}

// CanonicalGender maps the known synonym set onto Male/Female. Anything
// unrecognized passes through unchanged.
func CanonicalGender(g string) string {
	if c, ok := genderCanonical[strings.ToLower(strings.TrimSpace(g))]; ok {
		return c
	}
	return g
}

// genderValue reads the textual gender from either a bare scalar or a
// one-level wrapper mapping with a Value field.
func genderValue(v *model.Value) (string, bool) {
	if v.IsMapping() {
		inner := v.Field("Value")
		if inner == nil {
			inner = v.Field("value")
		}
		if s, ok := inner.AsString(); ok {
			return s, true
		}
		return "", false
	}
	return v.AsString()
}

// ageValue coerces an age mention to a number, falling back to the first
// numeric substring of its textual form. Container values go through the
// same fallback over their literal rendering, so a wrapped age like
// {"Value": 25} still contributes.
func ageValue(v *model.Value) (float64, bool) {
	if f, ok := v.AsFloat(); ok {
		return f, true
	}
	s, ok := v.AsString()
	if !ok {
		s = v.Repr()
	}
	m := firstNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	f, ok2 := model.String(m).AsFloat()
	return f, ok2
}

// ageRangeValue reduces a Low/High range container to its midpoint, or to
// whichever bound is present when only one is.
func ageRangeValue(v *model.Value) (float64, bool) {
	if !v.IsMapping() {
		return 0, false
	}
	lowVal := v.Field("Low")
	if lowVal == nil {
		lowVal = v.Field("low")
	}
	highVal := v.Field("High")
	if highVal == nil {
		highVal = v.Field("high")
	}

	low, hasLow := lowVal.AsFloat()
	high, hasHigh := highVal.AsFloat()
	switch {
	case hasLow && hasHigh:
		return (low + high) / 2, true
	case hasLow:
		return low, true
	case hasHigh:
		return high, true
	}
	return 0, false
}

func median(vals []float64) float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
