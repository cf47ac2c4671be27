package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tompkins/pkg/cache"
	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/observability"
	"github.com/matzehuels/tompkins/pkg/render"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// Runner executes pipelines with caching. It holds no per-run state, so
// the server shares one Runner across requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute validates opts, generates the triangle, renders every requested
// format and, if opts.Write is set, writes the artifacts.
//
// Invalid parameters fail before generation. Output problems fail after
// generation with RENDER_FAILED, and no file is written unless every
// artifact rendered.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	sel, skipped, err := opts.Selection()
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		r.Logger.Warn("ignoring malformed highlight", "part", s)
	}

	result := &Result{
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Skipped:   skipped,
	}

	start := time.Now()
	t, err := triangle.Generate(opts.K, opts.N)
	result.Stats.GenerateTime = time.Since(start)
	observability.Pipeline().OnGenerate(ctx, opts.K, opts.N, result.Stats.GenerateTime, err)
	if err != nil {
		return nil, err
	}
	result.Triangle = t
	result.Highlighted = len(render.Marked(t, sel))

	r.Logger.Debug("generated triangle",
		"k", opts.K,
		"rows", t.Len(),
		"max", t.Max(),
		"highlighted", result.Highlighted,
		"duration", result.Stats.GenerateTime)

	if opts.Write {
		if err := opts.checkOutputs(); err != nil {
			return nil, err
		}
	}

	start = time.Now()
	style := cache.HashValue(opts.Render)
	for _, f := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, hit, err := r.renderCached(ctx, t, sel, f, opts, style)
		if err != nil {
			return nil, err
		}
		if hit {
			result.Stats.CacheHits++
		}
		result.Artifacts[f] = data
	}
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cache_hits", result.Stats.CacheHits,
		"duration", result.Stats.RenderTime)

	if !opts.Write {
		return result, nil
	}

	result.Paths = make(map[string]string, len(opts.Formats))
	for _, f := range opts.Formats {
		path := opts.OutputPath(f)
		if err := render.WriteFile(path, result.Artifacts[f]); err != nil {
			return nil, err
		}
		result.Paths[f] = path
	}
	return result, nil
}

// renderCached renders one format, consulting the cache first. Cache
// failures are logged and never fail the render.
func (r *Runner) renderCached(ctx context.Context, t triangle.Triangle, sel render.Selection, format string, opts Options, style string) ([]byte, bool, error) {
	key := cache.ArtifactKey(cache.ArtifactKeyOpts{
		K:         opts.K,
		N:         opts.N,
		Selection: render.SelectionKey(sel),
		Format:    format,
		Style:     style,
	})

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "err", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, format)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, format)

	start := time.Now()
	data, err = render.Render(ctx, t, sel, format, opts.Render)
	observability.Pipeline().OnRender(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}
