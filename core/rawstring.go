package core

import (
	"math"
	"strconv"

	json "github.com/coreos/go-json"
)

// RawString produces the best-effort textual serialization used when a
// non-string Value is embedded inside a reference context (spec.md
// §4.2). Mappings and sequences emit canonical JSON with keys sorted
// lexicographically; null emits "None"; booleans emit "true"/"false";
// infinities and NaN emit ".inf"/"-.inf"/".nan"; integers and finite
// floats emit their natural decimal form. Literal and String values
// pass their payload through unchanged.
func (v *Value) RawString() string {
	if v == nil {
		return "None"
	}

	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.boolV {
			return "true"
		}
		return "false"
	case KindNumber:
		return numberRawString(v.numV)
	case KindString:
		return v.strV
	case KindLiteral:
		return v.strV
	case KindSequence, KindValueList:
		return jsonMust(v.toCanonicalJSON())
	case KindMapping:
		return jsonMust(v.toCanonicalJSON())
	default:
		return ""
	}
}

func numberRawString(n Number) string {
	if !n.IsFloat {
		return strconv.FormatInt(n.Int, 10)
	}
	if math.IsNaN(n.Float) {
		return ".nan"
	}
	if math.IsInf(n.Float, 1) {
		return ".inf"
	}
	if math.IsInf(n.Float, -1) {
		return "-.inf"
	}
	return strconv.FormatFloat(n.Float, 'f', -1, 64)
}

func jsonMust(v any, err error) string {
	if err != nil {
		return ""
	}
	b, mErr := json.Marshal(v)
	if mErr != nil {
		return ""
	}
	return string(b)
}

// toCanonicalJSON converts a Value into a plain-Go representation
// (map[string]any/[]any/scalars) with mapping keys ready to be emitted
// in sorted order by a downstream json.Marshal call. Since the
// coreos/go-json encoder marshals Go maps with sorted keys already
// (matching encoding/json's behavior), a native map[string]any is
// sufficient here.
func (v *Value) toCanonicalJSON() (any, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.boolV, nil
	case KindNumber:
		if v.numV.IsFloat {
			return v.numV.Float, nil
		}
		return v.numV.Int, nil
	case KindString, KindLiteral:
		return v.strV, nil
	case KindSequence, KindValueList:
		out := make([]any, len(v.seqV))
		for i, item := range v.seqV {
			conv, err := item.toCanonicalJSON()
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case KindMapping:
		out := make(map[string]any, v.mapV.Len())
		for _, k := range v.mapV.Keys() {
			val, _ := v.mapV.GetString(k)
			conv, err := val.toCanonicalJSON()
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	default:
		return nil, nil
	}
}

