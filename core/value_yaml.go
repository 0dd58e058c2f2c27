package core

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML recovers the most specific scalar kind for a plain YAML
// scalar node (int, then bool, then float, then string), mirroring the
// teacher's ScalarValue.UnmarshalYAML decimal-point heuristic, and
// otherwise decodes sequences and mappings structurally. Every decoded
// scalar string is held as a Value of kind String (not Literal) since it
// may still contain unresolved `${...}` references.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return v.unmarshalScalar(node)
	case yaml.SequenceNode:
		items := make([]*Value, len(node.Content))
		for i, child := range node.Content {
			item := &Value{}
			if err := item.UnmarshalYAML(child); err != nil {
				return err
			}
			items[i] = item
		}
		*v = *NewSequence(items)
		return nil
	case yaml.MappingNode:
		m, err := decodeMappingWithMergeKeys(node)
		if err != nil {
			return err
		}
		*v = *NewMapping(m)
		return nil
	case yaml.AliasNode:
		return v.UnmarshalYAML(node.Alias)
	default:
		*v = *NewNull()
		return nil
	}
}

// decodeMappingWithMergeKeys decodes a YAML mapping node into a
// Mapping, expanding any `<<:` merge keys per the YAML merge-key
// spec: a merge key's value (an aliased mapping, or a sequence of
// them) supplies default values for keys not otherwise present in the
// enclosing mapping; explicit keys always win, and among multiple
// merge sources the earlier one wins on conflict. This mirrors the
// flattening `yaml_merge_keys::merge_keys_serde` performs on node
// YAML ahead of Reclass's own class-parameter merge.
func decodeMappingWithMergeKeys(node *yaml.Node) (*Mapping, error) {
	var mergeSources []*Mapping
	type ownPair struct {
		key string
		val *Value
	}
	var own []ownPair

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		if keyNode.Tag == "!!merge" || keyNode.Value == "<<" {
			for _, src := range mergeSourceNodes(valNode) {
				m, err := decodeMappingWithMergeKeys(src)
				if err != nil {
					return nil, err
				}
				mergeSources = append(mergeSources, m)
			}
			continue
		}

		keyValue := &Value{}
		if err := keyValue.unmarshalScalar(keyNode); err != nil {
			return nil, err
		}
		val := &Value{}
		if err := val.UnmarshalYAML(valNode); err != nil {
			return nil, err
		}
		own = append(own, ownPair{key: scalarKeyString(keyValue), val: val})
	}

	result := NewEmptyMapping()
	for i := len(mergeSources) - 1; i >= 0; i-- {
		src := mergeSources[i]
		for _, k := range src.Keys() {
			val, _ := src.GetString(k)
			result.SetReplace(k, val)
		}
	}
	for _, p := range own {
		result.SetReplace(p.key, p.val)
	}
	return result, nil
}

// mergeSourceNodes normalizes a merge key's value node into the list
// of mapping nodes it names: a single aliased mapping, or a sequence
// of (possibly aliased) mappings, in precedence order.
func mergeSourceNodes(node *yaml.Node) []*yaml.Node {
	resolve := func(n *yaml.Node) *yaml.Node {
		if n.Kind == yaml.AliasNode {
			return n.Alias
		}
		return n
	}

	if node.Kind == yaml.SequenceNode {
		nodes := make([]*yaml.Node, 0, len(node.Content))
		for _, item := range node.Content {
			nodes = append(nodes, resolve(item))
		}
		return nodes
	}
	return []*yaml.Node{resolve(node)}
}

func (v *Value) unmarshalScalar(node *yaml.Node) error {
	if node.Tag == "!!null" || (node.Tag == "" && node.Value == "" && node.Style == 0) {
		*v = *NewNull()
		return nil
	}

	if !strings.Contains(node.Value, ".") {
		var intVal int64
		if err := node.Decode(&intVal); err == nil {
			*v = *NewInt(intVal)
			return nil
		}
	}

	var boolVal bool
	if err := node.Decode(&boolVal); err == nil {
		*v = *NewBool(boolVal)
		return nil
	}

	var floatVal float64
	if err := node.Decode(&floatVal); err == nil {
		*v = *NewFloat(floatVal)
		return nil
	}

	var stringVal string
	if err := node.Decode(&stringVal); err == nil {
		*v = *NewString(stringVal)
		return nil
	}

	*v = *NewNull()
	return nil
}

// scalarKeyString stringifies a decoded scalar Value for use as a raw
// mapping key (booleans/numbers/null are permitted as input keys per
// spec.md §3 and are stringified here).
func scalarKeyString(v *Value) string {
	switch v.Kind() {
	case KindString:
		s, _ := v.AsString()
		return s
	case KindLiteral:
		s, _ := v.AsLiteral()
		return s
	case KindBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case KindNumber:
		n, _ := v.AsNumber()
		return NewNumber(n).String()
	default:
		return ""
	}
}

// MarshalYAML emits the Value back into a structure the yaml.v3 encoder
// understands. Literal and String both emit as plain strings.
func (v *Value) MarshalYAML() (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		b, _ := v.AsBool()
		return b, nil
	case KindNumber:
		n, _ := v.AsNumber()
		if n.IsFloat {
			return n.Float, nil
		}
		return n.Int, nil
	case KindString:
		s, _ := v.AsString()
		return s, nil
	case KindLiteral:
		s, _ := v.AsLiteral()
		return s, nil
	case KindSequence:
		items, _ := v.AsSequence()
		return items, nil
	case KindMapping:
		m, _ := v.AsMapping()
		node := yaml.Node{Kind: yaml.MappingNode}
		for _, k := range m.Keys() {
			val, _ := m.GetString(k)
			var keyNode, valNode yaml.Node
			if err := keyNode.Encode(k); err != nil {
				return nil, err
			}
			if err := valNode.Encode(val); err != nil {
				return nil, err
			}
			node.Content = append(node.Content, &keyNode, &valNode)
		}
		return &node, nil
	case KindValueList:
		layers, _ := v.AsValueList()
		return layers, nil
	default:
		return nil, nil
	}
}

// ParseYAML decodes YAML source bytes into a Value tree using the
// Value.UnmarshalYAML hook, expanding YAML merge keys (`<<:`) within
// every mapping via decodeMappingWithMergeKeys.
func ParseYAML(data []byte) (*Value, error) {
	var v Value
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v.kind == KindNull && len(data) == 0 {
		return NewMapping(NewEmptyMapping()), nil
	}
	return &v, nil
}
