package extract

import (
	"strings"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
)

var (
	boolTrueTokens = map[string]bool{
		"true": true, "t": true, "1": true, "yes": true, "y": true, "on": true,
	}
	boolFalseTokens = map[string]bool{
		"false": true, "f": true, "0": true, "no": true, "n": true, "off": true,
	}
)

// Resolve locates the raw value for a configured attribute. Dotted paths
// are tried first in the order given; flat key names are only consulted
// when no dotted path matched. A match whose value is null counts as a
// miss. When the resolved value is a wrapper mapping and valueKey is
// configured, the wrapped value is returned instead.
func Resolve(root *model.Value, keys []string, valueKey string) *model.Value {
	var dotted, flat []string
	for _, k := range keys {
		if strings.Contains(k, ".") {
			dotted = append(dotted, k)
		} else {
			flat = append(flat, k)
		}
	}

	var value *model.Value
	for _, dk := range dotted {
		if v, found := findPath(root, dk); found && v.Kind() != model.KindNull {
			value = v
			break
		}
	}
	if value == nil && len(flat) > 0 {
		if v, found := findAnyKey(root, flat); found && v.Kind() != model.KindNull {
			value = v
		}
	}
	if value == nil {
		return nil
	}
	if value.IsMapping() && valueKey != "" {
		if inner := value.Field(valueKey); inner != nil {
			value = inner
		}
	}
	return value
}

// findPath resolves a dotted path. Each segment is matched
// case-insensitively at any depth below the point the previous segment
// matched: segments are ancestor/descendant constraints, not direct
// parent/child. The first resolution in traversal order wins, even when
// its value is null.
func findPath(root *model.Value, dotted string) (*model.Value, bool) {
	var segs []string
	for _, p := range strings.Split(dotted, ".") {
		if p != "" {
			segs = append(segs, strings.ToLower(p))
		}
	}

	var result *model.Value
	var rec func(v *model.Value, idx int) bool
	rec = func(v *model.Value, idx int) bool {
		if idx >= len(segs) {
			result = v
			return true
		}
		if v.IsMapping() {
			for _, k := range v.Keys() {
				if strings.ToLower(k) == segs[idx] {
					if rec(v.Field(k), idx+1) {
						return true
					}
				}
			}
			for _, k := range v.Keys() {
				if rec(v.Field(k), idx) {
					return true
				}
			}
		} else if v.IsSequence() {
			for _, it := range v.Items() {
				if rec(it, idx) {
					return true
				}
			}
		}
		return false
	}
	if rec(root, 0) {
		return result, true
	}
	return nil, false
}

// findAnyKey returns the value of the first mapping pair, in traversal
// order, whose key matches any of the given names case-insensitively.
func findAnyKey(root *model.Value, names []string) (*model.Value, bool) {
	targets := make(map[string]bool, len(names))
	for _, n := range names {
		targets[strings.ToLower(n)] = true
	}

	var result *model.Value
	found := false
	model.EachPair(root, func(key string, val *model.Value) {
		if found {
			return
		}
		if targets[strings.ToLower(key)] {
			result = val
			found = true
		}
	})
	return result, found
}

// CoerceBool maps the resolved value to a boolean: native booleans pass
// through, numbers coerce by zero/nonzero, and a fixed token set covers
// string forms. Anything else contributes no value.
func CoerceBool(v *model.Value) *bool {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case model.KindBool:
		b, _ := v.AsBool()
		return &b
	case model.KindNumber:
		f, _ := v.AsFloat()
		b := f != 0
		return &b
	case model.KindString:
		s, _ := v.AsString()
		token := strings.ToLower(strings.TrimSpace(s))
		if boolTrueTokens[token] {
			b := true
			return &b
		}
		if boolFalseTokens[token] {
			b := false
			return &b
		}
	}
	return nil
}

// CoerceNumber coerces the resolved value to a float.
func CoerceNumber(v *model.Value) *float64 {
	if f, ok := v.AsFloat(); ok {
		return &f
	}
	return nil
}

// CoerceCategory stringifies the resolved value as-is. Strings pass
// through unquoted; everything else, containers included, renders in its
// literal form.
func CoerceCategory(v *model.Value) *string {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case model.KindString:
		s, _ := v.AsString()
		return &s
	case model.KindNull:
		return nil
	}
	s := v.Repr()
	return &s
}
