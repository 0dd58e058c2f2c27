package inventory

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/classtree/classtree/config"
	"github.com/classtree/classtree/errors"
	"github.com/classtree/classtree/internal/pool"
	"github.com/classtree/classtree/node"
)

// RenderOptions configures RenderAll.
type RenderOptions struct {
	// Concurrency is the maximum number of nodes rendered at once.
	// pool.Unbounded picks a limit of four times runtime.NumCPU().
	Concurrency int
	Logger      *zap.Logger
}

// RenderOption mutates a RenderOptions.
type RenderOption func(*RenderOptions)

// WithConcurrency overrides the render pool's concurrency limit.
func WithConcurrency(n int) RenderOption {
	return func(o *RenderOptions) { o.Concurrency = n }
}

// WithLogger overrides the structured logger used for per-node render
// events. A no-op logger is used by default.
func WithLogger(l *zap.Logger) RenderOption {
	return func(o *RenderOptions) { o.Logger = l }
}

type nodeResult struct {
	name string
	info *node.Info
	err  error
}

// RenderAll renders every node discovered in layout and aggregates the
// results, per spec.md §5's concurrency model: one render per node on
// a bounded pool, with the first node error cancelling further
// dispatch while in-flight renders drain. Grounded on the teacher's
// DeployChannels/ctx.Done() shutdown idiom, simplified to a single
// result channel, and buildkite-agent/pool/pool.go's bounded-pool
// shape (internal/pool).
func RenderAll(ctx context.Context, layout *Layout, cfg *config.Config, opts ...RenderOption) (*Inventory, error) {
	options := &RenderOptions{Concurrency: pool.Unbounded, Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(options)
	}

	runID := uuid.NewString()
	logger := options.Logger.With(zap.String("render_id", runID))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := pool.New(options.Concurrency)
	results := make(chan nodeResult, len(layout.NodeNames))

	for _, name := range layout.NodeNames {
		name := name
		p.Spawn(func() {
			select {
			case <-runCtx.Done():
				results <- nodeResult{name: name, err: runCtx.Err()}
				return
			default:
			}

			shortID, _ := gonanoid.New(8)
			nodeLogger := logger.With(zap.String("node", name), zap.String("render", shortID))
			nodeLogger.Debug("rendering node")

			info, err := renderOne(layout, cfg, name)
			if err != nil {
				nodeLogger.Error("node render failed", zap.Error(err))
				cancel()
			} else {
				nodeLogger.Debug("node rendered")
			}
			results <- nodeResult{name: name, info: info, err: err}
		})
	}

	go func() {
		p.Wait()
		close(results)
	}()

	infos := map[string]*node.Info{}
	var renderErrs []error
	for res := range results {
		if res.err != nil {
			if stderrors.Is(res.err, context.Canceled) {
				continue
			}
			renderErrs = append(renderErrs, res.err)
			continue
		}
		infos[res.name] = res.info
	}

	if len(renderErrs) > 0 {
		return nil, errors.NewLoadError(fmt.Errorf("rendering inventory"), renderErrs...)
	}

	return Aggregate(infos), nil
}

func renderOne(layout *Layout, cfg *config.Config, name string) (*node.Info, error) {
	raw, path, err := layout.loadNode(name)
	if err != nil {
		return nil, errors.NewNodeRenderError(name, err)
	}

	loader := &fsLoader{layout: layout}
	uri := "yaml_fs://" + path
	return node.Render(name, "", uri, raw, loader, cfg)
}
