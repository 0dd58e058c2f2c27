package node

import (
	"time"

	"github.com/classtree/classtree/core"
)

// Meta carries the metadata Reclass exposes to a node's own parameters
// under the `_reclass_` key, and to callers as the top-level render
// envelope: short/full name, inventory URI, environment, and the time
// the render started. Grounded on nodeinfo.rs's NodeInfoMeta.
type Meta struct {
	Node        string
	Name        string
	URI         string
	Environment string
	RenderTime  time.Time
}

// NewMeta builds node metadata for name, defaulting Environment to
// "base" as the original implementation's Node::parse does.
func NewMeta(name, uri string) *Meta {
	return &Meta{
		Node:        name,
		Name:        name,
		URI:         uri,
		Environment: "base",
		RenderTime:  time.Now(),
	}
}

// AsReclass builds the `_reclass_` mapping merged into a node's own
// parameters ahead of interpolation, mirroring nodeinfo.rs's
// as_reclass: {name: {full, parts, path, short}, environment}.
func (m *Meta) AsReclass() *core.Mapping {
	nameData := core.NewEmptyMapping()
	nameData.SetReplace("full", core.NewLiteral(m.Name))
	nameData.SetReplace("parts", core.NewSequence([]*core.Value{core.NewLiteral(m.Name)}))
	nameData.SetReplace("path", core.NewLiteral(m.Name))
	nameData.SetReplace("short", core.NewLiteral(m.Name))

	reclass := core.NewEmptyMapping()
	reclass.SetReplace("environment", core.NewLiteral(m.Environment))
	reclass.SetReplace("name", core.NewMapping(nameData))
	return reclass
}

// Info is the fully rendered outcome of a single node, the equivalent
// of nodeinfo.rs's NodeInfo: meta, ordered classes/applications, and
// the merged, interpolated parameters.
type Info struct {
	Meta         *Meta
	Applications []string
	Classes      []string
	Parameters   *core.Mapping
}

// AsDict reproduces NodeInfo::as_dict's shape for JSON emission:
// `__reclass__`, `applications`, `classes`, `environment`, `parameters`.
func (i *Info) AsDict() map[string]any {
	return map[string]any{
		"__reclass__": map[string]any{
			"node":        i.Meta.Node,
			"name":        i.Meta.Name,
			"uri":         i.Meta.URI,
			"environment": i.Meta.Environment,
			"timestamp":   i.Meta.RenderTime.Format("Mon Jan  2 15:04:05 2006"),
		},
		"applications": i.Applications,
		"classes":      i.Classes,
		"environment":  i.Meta.Environment,
		"parameters":   i.Parameters,
	}
}
