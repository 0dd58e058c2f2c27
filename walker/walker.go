package walker

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/classtree/classtree/config"
	"github.com/classtree/classtree/core"
	"github.com/classtree/classtree/errors"
	"github.com/classtree/classtree/list"
	"github.com/classtree/classtree/refs"
)

// ClassFile is the generic shape a Loader hands back for any class (or
// node) name: its own relative class list (not yet made absolute),
// applications, parameters, and own_loc (the dotted directory the
// class file lives in, used to resolve its own relative includes).
type ClassFile struct {
	OwnLoc       string
	Classes      []string
	Applications *list.RemovableList
	Parameters   *core.Value
}

// ClassNotFoundError is returned by a Loader when name has no backing
// file. Walk checks this via errors.As to decide whether cfg tolerates
// the miss.
type ClassNotFoundError struct {
	ClassName string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class %q not found", e.ClassName)
}

// Loader resolves a class (or node, for the initial entry point) name
// to its parsed contents.
type Loader interface {
	LoadClass(name string) (*ClassFile, error)
}

// Result is the accumulated outcome of a class walk: the ordered,
// deduplicated inclusion list (verbatim for `${...}`-valued entries),
// merged applications, and merged parameters.
type Result struct {
	Classes      []string
	Applications *list.RemovableList
	Parameters   *core.Mapping
}

// Walk performs the depth-first, pre-order class-inclusion walk
// described in spec.md §4.5, starting from rootClasses declared at
// rootOwnLoc (a node's own_loc, typically "").
func Walk(loader Loader, cfg *config.Config, rootClasses []string, rootOwnLoc string) (*Result, error) {
	w := &walk{
		loader:   loader,
		cfg:      cfg,
		visited:  map[string]struct{}{},
		classes:  list.NewUniqueList(),
		apps:     list.NewRemovableList(),
		params:   core.NewEmptyMapping(),
	}

	if err := w.walkList(rootClasses, rootOwnLoc); err != nil {
		return nil, err
	}

	return &Result{
		Classes:      w.classes.Items(),
		Applications: w.apps,
		Parameters:   w.params,
	}, nil
}

type walk struct {
	loader  Loader
	cfg     *config.Config
	visited map[string]struct{}
	classes *list.UniqueList
	apps    *list.RemovableList
	params  *core.Mapping
}

// walkList processes one class's (or the node's) own class-list
// entries in declaration order. A `${...}`-valued entry is appended to
// the output list verbatim at its sequential position, then
// interpolated against the parameters merged so far to find the class
// it actually names; everything else is made absolute relative to
// ownLoc and walked normally.
func (w *walk) walkList(entries []string, ownLoc string) error {
	for _, raw := range entries {
		if strings.Contains(raw, "${") {
			w.classes.AppendIfNew(raw)

			resolvedName, err := w.interpolateClassName(raw)
			if err != nil {
				return err
			}
			if err := w.walkOne(resolvedName, false); err != nil {
				return err
			}
			continue
		}

		abs := AbsClassName(ownLoc, raw)
		if err := w.walkOne(abs, true); err != nil {
			return err
		}
	}
	return nil
}

// walkOne loads and recurses into a single absolute class name. When
// appendSelf is true the class's own name is appended to the output
// list after its children (the normal pre-order case); when false the
// class was reached via a `${...}` reference already represented
// verbatim in the output list, so only its children are appended.
func (w *walk) walkOne(name string, appendSelf bool) error {
	if _, seen := w.visited[name]; seen {
		return nil
	}
	w.visited[name] = struct{}{}

	cf, err := w.loader.LoadClass(name)
	if err != nil {
		var notFound *ClassNotFoundError
		if stderrors.As(err, &notFound) && w.cfg.AllowsMissing(name) {
			// Tolerated: the class contributes nothing, but its name
			// still appears in the rendered classes list.
			if appendSelf {
				w.classes.AppendIfNew(name)
			}
			return nil
		}
		return err
	}

	if err := w.walkList(cf.Classes, cf.OwnLoc); err != nil {
		return err
	}

	w.apps.Merge(cf.Applications)
	if cf.Parameters != nil {
		if paramsMapping, ok := cf.Parameters.AsMapping(); ok {
			if err := w.params.Merge(paramsMapping); err != nil {
				return err
			}
		}
	}

	if appendSelf {
		w.classes.AppendIfNew(name)
	}
	return nil
}

// interpolateClassName resolves a raw class-list entry containing
// `${...}` against the parameters merged so far, requiring the result
// to be string-like (Literal).
func (w *walk) interpolateClassName(raw string) (string, error) {
	tok, err := refs.Parse(raw)
	if err != nil {
		return "", err
	}
	resolved, err := refs.Resolve(tok, w.params, refs.NewResolveState())
	if err != nil {
		return "", err
	}
	lit, ok := resolved.AsLiteral()
	if !ok {
		return "", errors.NewLookupError(raw)
	}
	return lit, nil
}
