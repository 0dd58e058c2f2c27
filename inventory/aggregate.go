package inventory

import (
	"sort"
	"time"

	"github.com/classtree/classtree/node"
)

// Inventory is the aggregated outcome of rendering every node in a
// Layout: per-class and per-application node indexes, plus every
// node's own rendered Info, reproducing inventory.rs's Inventory.
type Inventory struct {
	// Applications maps each application included by at least one node
	// to the list of nodes that include it.
	Applications map[string][]string
	// Classes maps each class included by at least one node to the
	// list of nodes that include it (the raw, possibly `${...}`-valued
	// class token, not its resolved name, matching the source's
	// observed behavior for reference-valued class entries).
	Classes map[string][]string
	// Nodes maps each node name to its rendered Info.
	Nodes map[string]*node.Info

	// Timestamp is when aggregation completed.
	Timestamp time.Time
}

// Aggregate inverts a set of rendered nodes into Inventory's
// class->nodes and application->nodes indexes. Grounded on
// original_source/src/inventory.rs's Inventory::render.
func Aggregate(infos map[string]*node.Info) *Inventory {
	inv := &Inventory{
		Applications: map[string][]string{},
		Classes:      map[string][]string{},
		Nodes:        map[string]*node.Info{},
		Timestamp:    time.Now(),
	}

	names := make([]string, 0, len(infos))
	for name := range infos {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := infos[name]
		inv.Nodes[name] = info
		for _, cls := range info.Classes {
			inv.Classes[cls] = append(inv.Classes[cls], name)
		}
		for _, app := range info.Applications {
			inv.Applications[app] = append(inv.Applications[app], name)
		}
	}

	return inv
}

// AsDict reproduces Inventory::as_dict's top-level shape.
func (inv *Inventory) AsDict() map[string]any {
	nodes := make(map[string]any, len(inv.Nodes))
	for name, info := range inv.Nodes {
		nodes[name] = info.AsDict()
	}
	return map[string]any{
		"applications": inv.Applications,
		"classes":      inv.Classes,
		"nodes":        nodes,
		"__reclass__": map[string]any{
			"timestamp": inv.Timestamp.Format("Mon Jan  2 15:04:05 2006"),
		},
	}
}
