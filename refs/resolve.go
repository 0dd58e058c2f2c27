package refs

import (
	"strings"

	"github.com/classtree/classtree/core"
	"github.com/classtree/classtree/errors"
)

// Interpolate walks value, replacing every String with the Literal (or,
// for a string that is nothing but a single reference, the referenced
// value verbatim) produced by parsing and resolving it against root,
// per spec.md §4.4. Null/Bool/Number/Literal pass through unchanged.
// Containers are interpolated element-/key-wise with an independent
// state clone per branch, then flattened to eliminate any ValueList
// introduced along the way.
func Interpolate(value *core.Value, root *core.Mapping, state *ResolveState) (*core.Value, error) {
	if value == nil {
		return core.NewNull(), nil
	}

	switch value.Kind() {
	case core.KindNull, core.KindBool, core.KindNumber, core.KindLiteral:
		return value, nil

	case core.KindString:
		raw, _ := value.AsString()
		tok, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		return Resolve(tok, root, state)

	case core.KindSequence:
		items, _ := value.AsSequence()
		out := make([]*core.Value, len(items))
		for i, item := range items {
			resolved, err := Interpolate(item, root, state.Clone())
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return core.Flatten(core.NewSequence(out))

	case core.KindMapping:
		m, _ := value.AsMapping()
		out := core.NewEmptyMapping()
		for _, k := range m.Keys() {
			v, _ := m.GetString(k)
			resolved, err := Interpolate(v, root, state.Clone())
			if err != nil {
				return nil, err
			}
			if err := out.InsertForce(k, resolved, m.IsConst(k), m.IsOverride(k)); err != nil {
				return nil, err
			}
		}
		return core.Flatten(core.NewMapping(out))

	case core.KindValueList:
		layers, _ := value.AsValueList()
		out := make([]*core.Value, len(layers))
		for i, layer := range layers {
			resolved, err := Interpolate(layer, root, state.Clone())
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return core.Flatten(core.NewValueList(out))

	default:
		return value, nil
	}
}

// Resolve evaluates a parsed Token against root. A lone Ref token
// returns the referenced value with its own Kind intact (so a
// parameter that is nothing but `${a:b}` can yield a Mapping, Sequence
// or Number, not just text); a Combined token (literal text mixed with
// one or more references) always produces a Literal built from each
// part's RawString representation.
func Resolve(tok *Token, root *core.Mapping, state *ResolveState) (*core.Value, error) {
	switch tok.Kind {
	case TokenLiteral:
		return core.NewLiteral(tok.Literal), nil

	case TokenRef:
		return resolveRef(tok, root, state)

	case TokenCombined:
		var b strings.Builder
		for _, child := range tok.Children {
			v, err := Resolve(child, root, state)
			if err != nil {
				return nil, err
			}
			b.WriteString(v.RawString())
		}
		return core.NewLiteral(b.String()), nil

	default:
		return core.NewLiteral(""), nil
	}
}

// resolveRef resolves a single `${...}` reference: its body is first
// assembled into a colon-delimited path string (recursively resolving
// any nested references within the path, e.g. `${foo:${bar}}`), then
// that path is walked segment by segment against root, and the value
// found there is itself interpolated (so references may point at
// values that are themselves references, to a depth of MaxDepth).
func resolveRef(tok *Token, root *core.Mapping, state *ResolveState) (*core.Value, error) {
	path, err := resolvePathString(tok, root, state)
	if err != nil {
		return nil, err
	}

	if state.Depth()+1 > MaxDepth {
		return nil, errors.NewDepthError(MaxDepth, append(state.SeenPaths(), path))
	}
	if state.Has(path) {
		return nil, errors.NewLoopError(state.SeenPaths())
	}

	cur := core.NewMapping(root)
	for _, seg := range strings.Split(path, ":") {
		next, ok := cur.Get(seg)
		if !ok {
			return nil, errors.NewLookupError(path)
		}
		cur = next
	}

	return Interpolate(cur, root, state.WithSeen(path))
}

// resolvePathString concatenates a Ref token's children into the raw
// path string, resolving any nested Ref children against root first
// and rendering them via RawString.
func resolvePathString(tok *Token, root *core.Mapping, state *ResolveState) (string, error) {
	var b strings.Builder
	for _, child := range tok.Children {
		switch child.Kind {
		case TokenLiteral:
			b.WriteString(child.Literal)
		case TokenRef, TokenCombined:
			v, err := Resolve(child, root, state)
			if err != nil {
				return "", err
			}
			b.WriteString(v.RawString())
		}
	}
	return b.String(), nil
}
