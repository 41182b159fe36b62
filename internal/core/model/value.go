package model

import (
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindMapping
	KindSequence
)

// Value is a parsed payload node. Mappings remember key insertion order so
// that traversal follows document order, which the extraction rules
// (last-write-wins, first-match) depend on.
type Value struct {
	kind    Kind
	boolVal bool
	numVal  float64
	strVal  string
	keys    []string
	fields  map[string]*Value
	items   []*Value
}

func Null() *Value            { return &Value{kind: KindNull} }
func Bool(b bool) *Value      { return &Value{kind: KindBool, boolVal: b} }
func Number(f float64) *Value { return &Value{kind: KindNumber, numVal: f} }
func String(s string) *Value  { return &Value{kind: KindString, strVal: s} }

func NewMapping() *Value {
	return &Value{kind: KindMapping, fields: make(map[string]*Value)}
}

func NewSequence() *Value {
	return &Value{kind: KindSequence}
}

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsMapping() bool  { return v != nil && v.kind == KindMapping }
func (v *Value) IsSequence() bool { return v != nil && v.kind == KindSequence }

// IsContainer reports whether v is a mapping or sequence. Downstream
// extraction only searches containers; bare scalars are never accepted as
// a payload root.
func (v *Value) IsContainer() bool {
	return v != nil && (v.kind == KindMapping || v.kind == KindSequence)
}

// Set adds or replaces a mapping entry. A replaced key keeps its original
// position, matching how repeated keys behave in the upstream producers.
func (v *Value) Set(key string, val *Value) {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
}

// Field returns the value for an exact key, or nil.
func (v *Value) Field(key string) *Value {
	if v == nil || v.kind != KindMapping {
		return nil
	}
	return v.fields[key]
}

// FieldFold returns the value for a key matched case-insensitively, first
// key in insertion order wins.
func (v *Value) FieldFold(key string) *Value {
	if v == nil || v.kind != KindMapping {
		return nil
	}
	for _, k := range v.keys {
		if strings.EqualFold(k, key) {
			return v.fields[k]
		}
	}
	return nil
}

// Keys returns mapping keys in insertion order.
func (v *Value) Keys() []string { return v.keys }

// Append adds an element to a sequence.
func (v *Value) Append(val *Value) {
	v.items = append(v.items, val)
}

// Items returns sequence elements in order.
func (v *Value) Items() []*Value { return v.items }

// Len returns the entry count of a mapping or sequence, zero otherwise.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindMapping:
		return len(v.keys)
	case KindSequence:
		return len(v.items)
	}
	return 0
}

// AsString renders a scalar the way the payload producers stringify values.
// Containers and nulls have no string form.
func (v *Value) AsString() (string, bool) {
	if v == nil {
		return "", false
	}
	switch v.kind {
	case KindString:
		return v.strVal, true
	case KindBool:
		if v.boolVal {
			return "true", true
		}
		return "false", true
	case KindNumber:
		return strconv.FormatFloat(v.numVal, 'g', -1, 64), true
	}
	return "", false
}

// AsFloat coerces a scalar to a number.
func (v *Value) AsFloat() (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.kind {
	case KindNumber:
		return v.numVal, true
	case KindBool:
		if v.boolVal {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.strVal), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsBool returns the native boolean, only for KindBool.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.boolVal, true
}

// Repr renders the value the way the upstream producers print one:
// single-quoted strings, True/False/None tokens, mappings and sequences
// in literal form. Extraction fallbacks that scan a textual rendering of
// arbitrary shapes use this.
func (v *Value) Repr() string {
	if v == nil {
		return "None"
	}
	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.boolVal {
			return "True"
		}
		return "False"
	case KindNumber:
		return strconv.FormatFloat(v.numVal, 'g', -1, 64)
	case KindString:
		return "'" + v.strVal + "'"
	case KindMapping:
		parts := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			parts = append(parts, "'"+k+"': "+v.fields[k].Repr())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindSequence:
		parts := make([]string, 0, len(v.items))
		for _, it := range v.items {
			parts = append(parts, it.Repr())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// EachPair walks v depth-first in document order and calls fn for every
// mapping key/value pair encountered at any depth. Sequence elements are
// descended into but do not themselves produce a call.
func EachPair(v *Value, fn func(key string, val *Value)) {
	if v == nil {
		return
	}
	switch v.kind {
	case KindMapping:
		for _, k := range v.keys {
			child := v.fields[k]
			fn(k, child)
			EachPair(child, fn)
		}
	case KindSequence:
		for _, it := range v.items {
			EachPair(it, fn)
		}
	}
}

// Interface converts the tree to plain Go values for JSON encoding.
// Mapping order is lost here; callers that need order keep the Value.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindNumber:
		return v.numVal
	case KindString:
		return v.strVal
	case KindMapping:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.fields[k].Interface()
		}
		return out
	case KindSequence:
		out := make([]any, 0, len(v.items))
		for _, it := range v.items {
			out = append(out, it.Interface())
		}
		return out
	}
	return nil
}
