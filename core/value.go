// Package core implements the value algebra and ordered mapping container
// at the heart of the class tree engine: a tagged node type with
// first-class layering, and an insertion-ordered keyed container carrying
// per-key constness and override flags.
package core

import (
	"fmt"
	"strings"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindLiteral
	KindSequence
	KindMapping
	KindValueList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindLiteral:
		return "literal"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindValueList:
		return "value_list"
	default:
		return "unknown"
	}
}

// Number is a closed int64/float64 union. Exactly one of the two is
// meaningful, selected by IsFloat.
type Number struct {
	IsFloat bool
	Int     int64
	Float   float64
}

// NumberFromInt builds an integral Number.
func NumberFromInt(v int64) Number {
	return Number{Int: v}
}

// NumberFromFloat builds a floating-point Number.
func NumberFromFloat(v float64) Number {
	return Number{IsFloat: true, Float: v}
}

// AsFloat returns the number widened to float64 regardless of kind.
func (n Number) AsFloat() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

// Value is a tagged union over the eight variants of spec.md's data model:
// Null, Bool, Number, String, Literal, Sequence, Mapping and ValueList.
// String and ValueList are transient: every fully rendered tree must be
// free of both.
type Value struct {
	kind Kind

	boolV bool
	numV  Number
	strV  string // String or Literal payload

	seqV []*Value // Sequence or ValueList payload
	mapV *Mapping
}

// NewNull returns the Null value.
func NewNull() *Value {
	return &Value{kind: KindNull}
}

// NewBool wraps a boolean.
func NewBool(v bool) *Value {
	return &Value{kind: KindBool, boolV: v}
}

// NewInt wraps an integer.
func NewInt(v int64) *Value {
	return &Value{kind: KindNumber, numV: NumberFromInt(v)}
}

// NewFloat wraps a floating-point number.
func NewFloat(v float64) *Value {
	return &Value{kind: KindNumber, numV: NumberFromFloat(v)}
}

// NewNumber wraps a pre-built Number.
func NewNumber(n Number) *Value {
	return &Value{kind: KindNumber, numV: n}
}

// NewString wraps raw, possibly-unresolved text. Strings must be
// interpolated into Literals before a render result is returned.
func NewString(v string) *Value {
	return &Value{kind: KindString, strV: v}
}

// NewLiteral wraps fully resolved text.
func NewLiteral(v string) *Value {
	return &Value{kind: KindLiteral, strV: v}
}

// NewSequence wraps an ordered list of values.
func NewSequence(items []*Value) *Value {
	return &Value{kind: KindSequence, seqV: items}
}

// NewMapping wraps an ordered keyed container.
func NewMapping(m *Mapping) *Value {
	if m == nil {
		m = NewEmptyMapping()
	}
	return &Value{kind: KindMapping, mapV: m}
}

// NewValueList wraps an ordered list of layers awaiting Flatten.
func NewValueList(layers []*Value) *Value {
	return &Value{kind: KindValueList, seqV: layers}
}

// Kind returns the variant tag.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool      { return v.Kind() == KindNull }
func (v *Value) IsBool() bool      { return v.Kind() == KindBool }
func (v *Value) IsNumber() bool    { return v.Kind() == KindNumber }
func (v *Value) IsString() bool    { return v.Kind() == KindString }
func (v *Value) IsLiteral() bool   { return v.Kind() == KindLiteral }
func (v *Value) IsSequence() bool  { return v.Kind() == KindSequence }
func (v *Value) IsMapping() bool   { return v.Kind() == KindMapping }
func (v *Value) IsValueList() bool { return v.Kind() == KindValueList }

// AsBool returns the boolean payload and whether the value is a Bool.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.boolV, true
}

// AsNumber returns the Number payload and whether the value is a Number.
func (v *Value) AsNumber() (Number, bool) {
	if v == nil || v.kind != KindNumber {
		return Number{}, false
	}
	return v.numV, true
}

// AsString returns the raw String payload and whether the value is a
// String (not a Literal — use AsLiteral for that).
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.strV, true
}

// AsLiteral returns the Literal payload and whether the value is a
// Literal.
func (v *Value) AsLiteral() (string, bool) {
	if v == nil || v.kind != KindLiteral {
		return "", false
	}
	return v.strV, true
}

// AsSequence returns the Sequence payload and whether the value is a
// Sequence.
func (v *Value) AsSequence() ([]*Value, bool) {
	if v == nil || v.kind != KindSequence {
		return nil, false
	}
	return v.seqV, true
}

// AsSequenceMut returns the Sequence backing slice by reference so the
// caller may mutate it in place.
func (v *Value) AsSequenceMut() (*[]*Value, bool) {
	if v == nil || v.kind != KindSequence {
		return nil, false
	}
	return &v.seqV, true
}

// AsMapping returns the Mapping payload and whether the value is a
// Mapping.
func (v *Value) AsMapping() (*Mapping, bool) {
	if v == nil || v.kind != KindMapping {
		return nil, false
	}
	return v.mapV, true
}

// AsMappingMut returns the Mapping payload for in-place mutation.
func (v *Value) AsMappingMut() (*Mapping, bool) {
	return v.AsMapping()
}

// AsValueList returns the ValueList layers and whether the value is a
// ValueList.
func (v *Value) AsValueList() ([]*Value, bool) {
	if v == nil || v.kind != KindValueList {
		return nil, false
	}
	return v.seqV, true
}

// AppendLayer appends a layer to a ValueList in place, splicing in the
// layer's own elements if it is itself a ValueList.
func (v *Value) AppendLayer(layer *Value) {
	if v.kind != KindValueList {
		return
	}
	if layer.kind == KindValueList {
		v.seqV = append(v.seqV, layer.seqV...)
		return
	}
	v.seqV = append(v.seqV, layer)
}

// Get performs indexed access: numeric segments index into Sequence or
// ValueList, any other segment is looked up as a Mapping key. Returns
// nil, false if the segment does not resolve.
func (v *Value) Get(segment string) (*Value, bool) {
	if v == nil {
		return nil, false
	}

	if idx, isIndex := parseIndex(segment); isIndex {
		switch v.kind {
		case KindSequence, KindValueList:
			if idx < 0 || idx >= len(v.seqV) {
				return nil, false
			}
			return v.seqV[idx], true
		}
	}

	if v.kind == KindMapping {
		return v.mapV.GetString(segment)
	}

	return nil, false
}

func parseIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	neg := false
	s := segment
	if s[0] == '-' {
		neg = true
		s = s[1:]
		if s == "" {
			return 0, false
		}
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

// StripPrefix inspects a candidate mapping key for a leading `=`
// (constant) or `~` (override) marker. It returns the key with the
// marker consumed and which marker, if any, was found.
func StripPrefix(key string) (stripped string, constFlag bool, overrideFlag bool) {
	if key == "" {
		return key, false, false
	}
	switch key[0] {
	case '=':
		return key[1:], true, false
	case '~':
		return key[1:], false, true
	default:
		return key, false, false
	}
}

// String renders a debug representation, not used for JSON/YAML output.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.boolV)
	case KindNumber:
		if v.numV.IsFloat {
			return fmt.Sprintf("%g", v.numV.Float)
		}
		return fmt.Sprintf("%d", v.numV.Int)
	case KindString:
		return fmt.Sprintf("String(%q)", v.strV)
	case KindLiteral:
		return v.strV
	case KindSequence:
		parts := make([]string, len(v.seqV))
		for i, item := range v.seqV {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		return v.mapV.String()
	case KindValueList:
		parts := make([]string, len(v.seqV))
		for i, item := range v.seqV {
			parts[i] = item.String()
		}
		return "ValueList(" + strings.Join(parts, ", ") + ")"
	default:
		return "<invalid>"
	}
}
