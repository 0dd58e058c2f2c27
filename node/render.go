package node

import (
	"github.com/classtree/classtree/config"
	"github.com/classtree/classtree/core"
	"github.com/classtree/classtree/errors"
	"github.com/classtree/classtree/refs"
	"github.com/classtree/classtree/walker"
)

// Render runs the full per-node pipeline described in spec.md §4.6:
// walk the node's classes, merge the node's own applications and
// parameters on top of what the walk accumulated, inject the
// `_reclass_` meta parameter, flatten away any remaining layered
// accumulation, and interpolate references against the result.
func Render(name, ownLoc, uri string, raw *Raw, loader walker.Loader, cfg *config.Config) (*Info, error) {
	result, err := walker.Walk(loader, cfg, raw.Classes, ownLoc)
	if err != nil {
		return nil, errors.NewNodeRenderError(name, err)
	}

	result.Applications.Merge(raw.Applications)

	if raw.Parameters != nil {
		if paramsMapping, ok := raw.Parameters.AsMapping(); ok {
			if err := result.Parameters.Merge(paramsMapping); err != nil {
				return nil, errors.NewNodeRenderError(name, err)
			}
		}
	}

	meta := NewMeta(name, uri)
	reclassWrapper := core.NewEmptyMapping()
	reclassWrapper.SetReplace("_reclass_", core.NewMapping(meta.AsReclass()))
	if err := result.Parameters.Merge(reclassWrapper); err != nil {
		return nil, errors.NewNodeRenderError(name, err)
	}

	flatParams, err := core.Flatten(core.NewMapping(result.Parameters))
	if err != nil {
		return nil, errors.NewNodeRenderError(name, err)
	}
	flatMapping, _ := flatParams.AsMapping()

	interpolated, err := refs.Interpolate(flatParams, flatMapping, refs.NewResolveState())
	if err != nil {
		return nil, errors.NewNodeRenderError(name, err)
	}
	finalParams, ok := interpolated.AsMapping()
	if !ok {
		finalParams = core.NewEmptyMapping()
	}

	return &Info{
		Meta:         meta,
		Applications: result.Applications.Items(),
		Classes:      result.Classes,
		Parameters:   finalParams,
	}, nil
}
