package core

import (
	"strings"

	"github.com/classtree/classtree/errors"
)

// Mapping is an insertion-ordered key->Value container carrying two
// auxiliary sets of flags per spec.md §3/§4.3: constKeys (protected from
// overwrite) and overrideKeys (replace rather than layer on merge).
type Mapping struct {
	keys         []string
	values       map[string]*Value
	constKeys    map[string]struct{}
	overrideKeys map[string]struct{}
}

// NewEmptyMapping returns an empty Mapping ready for Insert/Merge.
func NewEmptyMapping() *Mapping {
	return &Mapping{
		values:       map[string]*Value{},
		constKeys:    map[string]struct{}{},
		overrideKeys: map[string]struct{}{},
	}
}

// Keys returns the keys in first-insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// GetString looks up a key without prefix stripping (keys are stored
// already stripped).
func (m *Mapping) GetString(key string) (*Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// IsConst reports whether key is in the constant set.
func (m *Mapping) IsConst(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.constKeys[key]
	return ok
}

// IsOverride reports whether key is in the override set.
func (m *Mapping) IsOverride(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.overrideKeys[key]
	return ok
}

func (m *Mapping) markConst(key string) {
	m.constKeys[key] = struct{}{}
}

func (m *Mapping) markOverride(key string) {
	m.overrideKeys[key] = struct{}{}
}

// Insert applies spec.md §4.3's layered-insert algorithm for a raw
// (possibly prefixed) key. Prefix markers are stripped from rawKey
// before lookup; the resulting const/override flags are unioned into
// the mapping's auxiliary sets after the value is placed.
func (m *Mapping) Insert(rawKey string, v *Value) error {
	return m.insert(rawKey, v, false, false)
}

// InsertForce is used by Merge to apply another mapping's per-key flags
// with force, per spec.md §4.3's "other's flagged key is applied with
// force" rule.
func (m *Mapping) InsertForce(rawKey string, v *Value, forceConst, forceOverride bool) error {
	return m.insert(rawKey, v, forceConst, forceOverride)
}

func (m *Mapping) insert(rawKey string, v *Value, forceConst, forceOverride bool) error {
	key, constFlag, overrideFlag := StripPrefix(rawKey)
	constFlag = constFlag || forceConst
	overrideFlag = overrideFlag || forceOverride

	existing, present := m.values[key]

	if present && m.IsConst(key) {
		return errors.NewConstError(key)
	}

	switch {
	case !present:
		m.keys = append(m.keys, key)
		m.values[key] = v
	case overrideFlag || m.IsOverride(key):
		m.values[key] = v
	default:
		if existing.IsValueList() {
			existing.AppendLayer(v)
		} else {
			layered := NewValueList([]*Value{existing})
			layered.AppendLayer(v)
			m.values[key] = layered
		}
	}

	if constFlag {
		m.markConst(key)
	}
	if overrideFlag {
		m.markOverride(key)
	}

	return nil
}

// SetReplace sets key to v, appending it to the key order if new or
// overwriting the existing value in place if already present. Unlike
// Insert/InsertForce this never layers a ValueList on conflict: it is
// used for YAML merge-key (`<<`) expansion, a document-level
// flattening distinct from the layered merge semantics Insert/Merge
// implement for class parameter accumulation.
func (m *Mapping) SetReplace(key string, v *Value) {
	if _, present := m.values[key]; !present {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Merge walks other in insertion order and applies Insert for each
// (key, value), propagating other's per-key const/override flags with
// force.
func (m *Mapping) Merge(other *Mapping) error {
	if other == nil {
		return nil
	}
	for _, k := range other.keys {
		v := other.values[k]
		err := m.InsertForce(k, v, other.IsConst(k), other.IsOverride(k))
		if err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a shallow copy sharing no backing slices/maps with m,
// safe to mutate independently (used by deepMergeMappings so the
// accumulator is never modified in place).
func (m *Mapping) Clone() *Mapping {
	if m == nil {
		return NewEmptyMapping()
	}
	clone := NewEmptyMapping()
	clone.keys = append([]string(nil), m.keys...)
	for k, v := range m.values {
		clone.values[k] = v
	}
	for k := range m.constKeys {
		clone.constKeys[k] = struct{}{}
	}
	for k := range m.overrideKeys {
		clone.overrideKeys[k] = struct{}{}
	}
	return clone
}

// String renders a debug representation.
func (m *Mapping) String() string {
	if m == nil {
		return "{}"
	}
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, k+": "+m.values[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Flatten eliminates ValueList anywhere in the tree rooted at v by
// folding layers left-to-right per spec.md §4.4's table. Sequences and
// Mappings that are not themselves a ValueList are flattened
// recursively first.
func Flatten(v *Value) (*Value, error) {
	if v == nil {
		return NewNull(), nil
	}

	switch v.kind {
	case KindValueList:
		return flattenLayers(v.seqV)
	case KindSequence:
		out := make([]*Value, len(v.seqV))
		for i, item := range v.seqV {
			flat, err := Flatten(item)
			if err != nil {
				return nil, err
			}
			out[i] = flat
		}
		return NewSequence(out), nil
	case KindMapping:
		out := NewEmptyMapping()
		for _, k := range v.mapV.keys {
			flat, err := Flatten(v.mapV.values[k])
			if err != nil {
				return nil, err
			}
			err = out.InsertForce(k, flat, v.mapV.IsConst(k), v.mapV.IsOverride(k))
			if err != nil {
				return nil, err
			}
		}
		return NewMapping(out), nil
	default:
		return v, nil
	}
}

func flattenLayers(layers []*Value) (*Value, error) {
	if len(layers) == 0 {
		return NewNull(), nil
	}

	acc, err := Flatten(layers[0])
	if err != nil {
		return nil, err
	}

	for _, raw := range layers[1:] {
		next, err := Flatten(raw)
		if err != nil {
			return nil, err
		}
		acc, err = flattenPair(acc, next)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

func flattenPair(acc, next *Value) (*Value, error) {
	if next.IsNull() {
		return NewNull(), nil
	}
	if acc.IsNull() {
		return next, nil
	}

	if acc.IsSequence() && next.IsSequence() {
		accItems, _ := acc.AsSequence()
		nextItems, _ := next.AsSequence()
		combined := make([]*Value, 0, len(accItems)+len(nextItems))
		combined = append(combined, accItems...)
		combined = append(combined, nextItems...)
		return NewSequence(combined), nil
	}

	if acc.IsMapping() && next.IsMapping() {
		accMap, _ := acc.AsMapping()
		nextMap, _ := next.AsMapping()
		merged, err := deepMergeMappings(accMap, nextMap)
		if err != nil {
			return nil, err
		}
		return NewMapping(merged), nil
	}

	if (acc.IsSequence() || acc.IsMapping()) && isScalarLike(next) {
		return nil, errors.NewMergeError("cannot merge scalar over container")
	}

	if isScalarLike(acc) && (next.IsSequence() || next.IsMapping()) {
		return nil, errors.NewMergeError("cannot merge container over scalar")
	}

	if acc.IsSequence() != next.IsSequence() || acc.IsMapping() != next.IsMapping() {
		if (acc.IsSequence() && next.IsMapping()) || (acc.IsMapping() && next.IsSequence()) {
			return nil, errors.NewMergeError("cannot merge mismatched container kinds")
		}
	}

	if isScalarLike(acc) && isScalarLike(next) {
		return next, nil
	}

	return nil, errors.NewMergeError("cannot merge incompatible values")
}

// deepMergeMappings implements flatten's "Mapping/Mapping -> deep
// merge" rule: each key of next is folded into acc by the same
// per-layer flatten rule (recursing into nested mappings, concatenating
// nested sequences, replacing scalars), rather than by the layered
// ValueList-accumulating Insert used during class-parameter
// accumulation. Const/override flags are unioned: a key flagged in
// either acc or next is flagged in the result.
func deepMergeMappings(acc, next *Mapping) (*Mapping, error) {
	out := acc.Clone()
	for _, k := range next.keys {
		nextVal := next.values[k]
		constFlag := next.IsConst(k)
		overrideFlag := next.IsOverride(k)

		if existing, present := out.values[k]; present {
			merged, err := flattenPair(existing, nextVal)
			if err != nil {
				return nil, err
			}
			out.values[k] = merged
		} else {
			out.keys = append(out.keys, k)
			out.values[k] = nextVal
		}

		if constFlag {
			out.markConst(k)
		}
		if overrideFlag {
			out.markOverride(k)
		}
	}
	return out, nil
}

func isScalarLike(v *Value) bool {
	switch v.Kind() {
	case KindBool, KindNumber, KindString, KindLiteral:
		return true
	default:
		return false
	}
}
