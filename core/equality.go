package core

import "hash/fnv"

// Equal reports structural equality between two values. ValueList
// equality compares layers positionally (flatten before comparing if
// layering should be ignored).
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == nil && other == nil
	}
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolV == other.boolV
	case KindNumber:
		return numbersEqual(v.numV, other.numV)
	case KindString, KindLiteral:
		return v.strV == other.strV
	case KindSequence, KindValueList:
		if len(v.seqV) != len(other.seqV) {
			return false
		}
		for i := range v.seqV {
			if !v.seqV[i].Equal(other.seqV[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.mapV.Equal(other.mapV)
	default:
		return false
	}
}

func numbersEqual(a, b Number) bool {
	if a.IsFloat != b.IsFloat {
		return a.AsFloat() == b.AsFloat()
	}
	if a.IsFloat {
		return a.Float == b.Float
	}
	return a.Int == b.Int
}

// Equal compares two mappings by key set and per-key value equality;
// order does not affect equality (iteration order is a separate,
// independently tested invariant).
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m == nil && other == nil
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for k, v := range m.values {
		ov, ok := other.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Hash computes an order-independent hash over the value tree: Mapping
// hashing XORs per-entry hashes so key order never affects the result.
func (v *Value) Hash() uint64 {
	if v == nil {
		return 0
	}
	h := fnv.New64a()
	switch v.kind {
	case KindNull:
		_, _ = h.Write([]byte{0})
	case KindBool:
		if v.boolV {
			_, _ = h.Write([]byte{1, 1})
		} else {
			_, _ = h.Write([]byte{1, 0})
		}
	case KindNumber:
		_, _ = h.Write([]byte{2})
		_, _ = h.Write([]byte(numberRawString(v.numV)))
	case KindString:
		_, _ = h.Write([]byte{3})
		_, _ = h.Write([]byte(v.strV))
	case KindLiteral:
		_, _ = h.Write([]byte{4})
		_, _ = h.Write([]byte(v.strV))
	case KindSequence, KindValueList:
		_, _ = h.Write([]byte{5})
		for _, item := range v.seqV {
			var buf [8]byte
			itemHash := item.Hash()
			for i := 0; i < 8; i++ {
				buf[i] = byte(itemHash >> (8 * i))
			}
			_, _ = h.Write(buf[:])
		}
	case KindMapping:
		_, _ = h.Write([]byte{6})
		var acc uint64
		for _, k := range v.mapV.keys {
			entryHash := fnv.New64a()
			_, _ = entryHash.Write([]byte(k))
			val := v.mapV.values[k]
			_, _ = entryHash.Write([]byte{':'})
			var buf [8]byte
			valHash := val.Hash()
			for i := 0; i < 8; i++ {
				buf[i] = byte(valHash >> (8 * i))
			}
			_, _ = entryHash.Write(buf[:])
			acc ^= entryHash.Sum64()
		}
		var accBuf [8]byte
		for i := 0; i < 8; i++ {
			accBuf[i] = byte(acc >> (8 * i))
		}
		_, _ = h.Write(accBuf[:])
	}
	return h.Sum64()
}
