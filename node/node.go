// Package node implements the per-node render pipeline: loading a
// node's own YAML, walking its classes, and interpolating the merged
// result, per spec.md §4.6.
package node

import (
	"github.com/classtree/classtree/core"
	"github.com/classtree/classtree/list"
	"github.com/classtree/classtree/walker"
)

// Raw is a node or class file's contents as declared in YAML, before
// any class-list resolution or merging.
type Raw struct {
	Classes      []string
	Applications *list.RemovableList
	Parameters   *core.Value
}

// Parse decodes a node (or class) file's YAML bytes into a Raw. Merge
// keys (`<<:`) within `parameters` are expanded by core.ParseYAML.
func Parse(data []byte) (*Raw, error) {
	doc, err := core.ParseYAML(data)
	if err != nil {
		return nil, err
	}

	m, ok := doc.AsMapping()
	if !ok {
		m = core.NewEmptyMapping()
	}

	raw := &Raw{
		Applications: list.NewRemovableList(),
		Parameters:   core.NewMapping(core.NewEmptyMapping()),
	}

	if classesVal, ok := m.GetString("classes"); ok {
		items, _ := classesVal.AsSequence()
		for _, item := range items {
			if s, ok := item.AsString(); ok {
				raw.Classes = append(raw.Classes, s)
			} else if s, ok := item.AsLiteral(); ok {
				raw.Classes = append(raw.Classes, s)
			}
		}
	}

	if appsVal, ok := m.GetString("applications"); ok {
		items, _ := appsVal.AsSequence()
		var names []string
		for _, item := range items {
			if s, ok := item.AsString(); ok {
				names = append(names, s)
			} else if s, ok := item.AsLiteral(); ok {
				names = append(names, s)
			}
		}
		raw.Applications = list.RemovableListFrom(names)
	}

	if paramsVal, ok := m.GetString("parameters"); ok {
		raw.Parameters = paramsVal
	}

	return raw, nil
}

// AsClassFile adapts Raw to walker.ClassFile for use as a
// walker.Loader backing value.
func (r *Raw) AsClassFile(ownLoc string) *walker.ClassFile {
	return &walker.ClassFile{
		OwnLoc:       ownLoc,
		Classes:      r.Classes,
		Applications: r.Applications,
		Parameters:   r.Parameters,
	}
}
