package pipeline

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/errors"
	pkgio "github.com/matzehuels/tilelay/pkg/io"
	"github.com/matzehuels/tilelay/pkg/observability"
	"github.com/matzehuels/tilelay/pkg/pattern"
)

// Walls keeps the last good layout of each wall.
//
// Updates are serialized: one recomputation runs to completion before the
// next starts, so results of successive edits never interleave. Good
// layouts are also written to the runner's cache under the wall key, which
// lets a restarted process serve them before the first update.
type Walls struct {
	runner *Runner

	mu      sync.Mutex
	layouts map[string]*Result
}

// NewWalls creates an empty store backed by r.
func NewWalls(r *Runner) *Walls {
	return &Walls{runner: r, layouts: make(map[string]*Result)}
}

// Update recomputes the layout of opts.Wall.
//
// On success the new layout replaces the stored one. On failure the stored
// layout is kept and returned alongside the error; it is nil when the wall
// never had a good layout. An unknown pattern or proportion is logged at
// error level since it usually means the catalog and the caller disagree.
func (w *Walls) Update(ctx context.Context, opts Options) (*Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if opts.Wall == "" {
		opts.Wall = DefaultWall
	}
	res, err := w.runner.Layout(ctx, opts)
	if err != nil {
		prev := w.layouts[opts.Wall]
		logger := opts.Logger
		if logger == nil {
			logger = w.runner.Logger
		}
		if errors.Is(err, errors.ErrCodePatternNotFound) || errors.Is(err, errors.ErrCodeProportionNotFound) {
			logger.Error("layout failed, keeping previous layout",
				"wall", opts.Wall,
				"pattern", opts.Pattern,
				"proportion", opts.Proportion,
				"previous", prev != nil,
				"err", err)
		}
		return prev, err
	}

	w.layouts[opts.Wall] = res
	w.persist(ctx, opts, res)
	return res, nil
}

// Get returns the last good layout of wall, looking in the cache when the
// store has none in memory.
func (w *Walls) Get(ctx context.Context, wall string) (*Result, error) {
	if err := errors.ValidateWallName(wall); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if res, ok := w.layouts[wall]; ok {
		return res, nil
	}

	data, hit, err := w.runner.Cache.Get(ctx, w.runner.Keyer.WallKey(wall))
	if err == nil && hit {
		doc, err := pkgio.ReadJSON(bytes.NewReader(data))
		if err == nil {
			observability.Cache().OnCacheHit(ctx, keyTypeWall)
			res := &Result{Wall: wall, Scale: doc.Params.Scale, Layout: doc.Result, CacheHit: true}
			w.layouts[wall] = res
			return res, nil
		}
		w.runner.Logger.Warn("discarding unreadable wall layout", "wall", wall, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeWall)
	return nil, errors.New(errors.ErrCodeWallNotFound, "no layout for wall %q", wall)
}

// Names returns the walls with a stored layout, sorted.
func (w *Walls) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.layouts))
	for name := range w.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (w *Walls) persist(ctx context.Context, opts Options, res *Result) {
	params := pattern.Params{
		UnitLength: w.runner.unitLength(opts),
		GroutWidth: opts.GroutWidth,
		Scale:      res.Scale,
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(pkgio.NewDocument(res.Wall, params, res.Layout), &buf); err != nil {
		w.runner.Logger.Warn("encode wall layout", "wall", res.Wall, "err", err)
		return
	}
	key := w.runner.Keyer.WallKey(res.Wall)
	if err := w.runner.Cache.Set(ctx, key, buf.Bytes(), cache.TTLWall); err != nil {
		w.runner.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeWall, buf.Len())
}
