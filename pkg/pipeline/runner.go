package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/lattice"
	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/observability"
	"github.com/matzehuels/tilelay/pkg/pattern"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
	keyTypeWall     = "wall"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the catalog, cache and logger. It
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Catalog *pattern.Catalog
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger

	catalogHash string
}

// NewRunner creates a runner over the given catalog.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(cat *pattern.Catalog, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cat == nil {
		cat = &pattern.Catalog{}
	}
	// An unhashable catalog only costs cache sharing between catalogs.
	hash, _ := cache.HashJSON(cat)
	return &Runner{
		Catalog:     cat,
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		catalogHash: hash,
	}
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	def, unit, key, err := r.prepare(opts)
	if err != nil {
		return nil, false, err
	}

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return &Result{Wall: opts.Wall, Key: key, Scale: opts.Scale, Layout: &cached, CacheHit: true}, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Wall, opts.Pattern)
	res, err := GenerateLayout(def, opts, unit)
	duration := time.Since(start)
	tiles := 0
	if res != nil {
		tiles = res.Stats.TilesDrawn
	}
	observability.Pipeline().OnLayoutComplete(ctx, opts.Wall, opts.Pattern, tiles, duration, err)
	if err != nil {
		return nil, false, err
	}

	opts.Logger.Info("computed layout",
		"wall", opts.Wall,
		"pattern", opts.Pattern,
		"tiles", res.Stats.TilesDrawn,
		"cut", res.Stats.TilesCut,
		"duration", duration)

	// Cache the result
	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return &Result{Wall: opts.Wall, Key: key, Scale: opts.Scale, Layout: res, Duration: duration}, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (*Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return res, err
}

// TraceWithCacheInfo records the lattice walk of a layout and renders it in
// the given format ("dot" or "svg"), with caching.
func (r *Runner) TraceWithCacheInfo(ctx context.Context, opts Options, format string) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	def, unit, layoutKey, err := r.prepare(opts)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(layoutKey, cache.ArtifactKeyOpts{Format: format})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	trace := &lattice.Trace{}
	if _, err := GenerateLayout(def, opts, unit, layout.WithTrace(trace)); err != nil {
		return nil, false, err
	}

	start := time.Now()
	data, err := RenderTrace(ctx, trace, format)
	observability.Pipeline().OnTraceRender(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return data, false, nil
}

// Trace is a convenience wrapper that calls TraceWithCacheInfo and discards the cache hit info.
func (r *Runner) Trace(ctx context.Context, opts Options, format string) ([]byte, error) {
	data, _, err := r.TraceWithCacheInfo(ctx, opts, format)
	return data, err
}

// RenderTrace renders a recorded lattice walk.
func RenderTrace(ctx context.Context, t *lattice.Trace, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(t.DOT()), nil
	case FormatSVG:
		svg, err := lattice.RenderSVG(ctx, t.DOT())
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return svg, nil
	default:
		return nil, ValidateFormat(format)
	}
}

// prepare resolves the pattern and unit length of validated options and
// computes the layout cache key. Unknown patterns and proportions fail here,
// before the cache is consulted.
func (r *Runner) prepare(opts Options) (*pattern.Definition, float64, string, error) {
	def, err := r.Catalog.Lookup(opts.Pattern)
	if err != nil {
		return nil, 0, "", err
	}
	if _, err := def.Resolve(opts.Proportion); err != nil {
		return nil, 0, "", err
	}
	unit := r.unitLength(opts)
	keyOpts, err := opts.LayoutKeyOpts(unit)
	if err != nil {
		return nil, 0, "", errors.Wrap(errors.ErrCodeInternal, err, "layout cache key")
	}
	return def, unit, r.Keyer.LayoutKey(r.catalogHash, keyOpts), nil
}

// unitLength returns the request's unit length, falling back to the
// catalog's minimum tile length and then to DefaultUnitLength.
func (r *Runner) unitLength(opts Options) float64 {
	switch {
	case opts.UnitLength > 0:
		return opts.UnitLength
	case r.Catalog.MinimumTileLength > 0:
		return r.Catalog.MinimumTileLength
	default:
		return DefaultUnitLength
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
