package layout

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilelay/pkg/clip"
	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/lattice"
	"github.com/matzehuels/tilelay/pkg/pattern"
	"github.com/matzehuels/tilelay/pkg/surface"
)

// Request is everything one layout pass needs. It is treated as immutable.
type Request struct {
	Pattern    *pattern.Definition
	Proportion int
	Params     pattern.Params
	Surface    surface.Surface // pixel space

	// Placement positions the seed group on the surface. When empty,
	// Anchor is used as given.
	Placement Placement
	Anchor    geometry.Point
	Offset    geometry.Point // added to the anchor, in px
}

// Option configures [Compute].
type Option func(*config)

type config struct {
	logger *log.Logger
	ops    clip.Ops
	trace  *lattice.Trace
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// WithOps replaces the polygon engine.
func WithOps(ops clip.Ops) Option { return func(c *config) { c.ops = ops } }

// WithTrace records the lattice walk into t.
func WithTrace(t *lattice.Trace) Option { return func(c *config) { c.trace = t } }

// Compute lays the requested pattern onto the surface.
//
// Missing geometry, the pattern anchor included, fails with
// MISSING_INPUT_DATA and an unknown proportion with PROPORTION_NOT_FOUND,
// both before any lattice work. Non-finite
// parameters or surface coordinates fail with INVALID_GEOMETRY. Tiles whose
// own coordinates are non-finite are never drawn.
func Compute(req Request, opts ...Option) (*Result, error) {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.ops == nil {
		cfg.ops = clip.New()
	}
	logger := cfg.logger

	if req.Pattern == nil {
		return nil, errors.New(errors.ErrCodeMissingInput, "no pattern")
	}
	if req.Pattern.Anchor == nil {
		return nil, errors.New(errors.ErrCodeMissingInput, "pattern %q has no anchor", req.Pattern.Name)
	}
	resolved, err := req.Pattern.Resolve(req.Proportion)
	if err != nil {
		return nil, err
	}
	if err := validateParams(req); err != nil {
		return nil, err
	}

	geom := resolved.Transform(req.Params)
	if err := checkGeometry(geom); err != nil {
		return nil, err
	}

	model, err := surface.NewModel(req.Surface, cfg.ops)
	if err != nil {
		return nil, err
	}

	anchor := req.Anchor
	if req.Placement != "" {
		if anchor, err = Place(req.Placement, req.Surface.Bounds(), geom.GroupSize()); err != nil {
			return nil, err
		}
	}
	seed := geom.Anchor.Add(anchor).Add(req.Offset)
	if !seed.IsFinite() {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "seed anchor %v is not finite", seed)
	}

	logger.Debug("computing layout",
		"pattern", geom.Name,
		"proportion", req.Proportion,
		"tiles_per_group", len(geom.Tiles),
		"seed", seed)

	res := &Result{
		Pattern:    geom.Name,
		Proportion: req.Proportion,
		Seed:       seed,
		GroupSize:  geom.GroupSize(),
		TileTypes:  geom.TileTypes,
		Tiles:      []TileGroup{},
	}

	clipper := newGroupClipper(model, geom)
	cls := newClassifier(model, req.Params.Scale)
	var covered float64

	walker := lattice.New(geom.Connection, model.Scale(), clipper.admit)
	walker.SetTrace(cfg.trace)
	ws := walker.Walk(seed, func(a lattice.Anchor) {
		class := clipper.classify(a.Pos)
		g := clipper.place(a.Pos, class)

		switch class {
		case GroupInside:
			res.Stats.GroupsInside++
		case GroupPartial:
			res.Stats.GroupsPartial++
		default:
			res.Stats.GroupsOutside++
		}

		for _, t := range g.Tiles {
			switch {
			case t.Draw:
				res.Stats.TilesDrawn++
				covered += t.Area
				if t.Cut {
					res.Stats.TilesCut++
				}
			case !t.Outline.IsFinite():
				logger.Warn("skipping non-finite tile", "anchor", a.Pos, "slot", t.Slot)
				res.Stats.TilesHidden++
			default:
				res.Stats.TilesHidden++
			}
		}

		if g.Drawn() == 0 {
			return
		}
		cls.add(&g)
		res.Tiles = append(res.Tiles, g)
	})

	res.Stats.AnchorsVisited = ws.Visited
	res.Stats.AnchorsRejected = ws.Rejected
	res.Stats.DuplicateAnchors = ws.Duplicates
	if ws.Duplicates > 0 {
		logger.Warn("duplicate anchors found", "pattern", geom.Name, "count", ws.Duplicates)
	}

	res.Counts = cls.counts
	res.Area = AreaReport{
		TileAreaCoveredPx:      covered,
		EffectiveSurfaceAreaPx: model.EffectiveArea(),
		TileAreaCovered:        squareMetres(covered, req.Params.Scale),
		EffectiveSurfaceArea:   squareMetres(model.EffectiveArea(), req.Params.Scale),
	}

	logger.Debug("layout computed",
		"pattern", geom.Name,
		"anchors", res.Stats.AnchorsVisited,
		"groups", len(res.Tiles),
		"tiles", res.Stats.TilesDrawn,
		"cut", res.Stats.TilesCut,
		"shapes", res.Counts.Len())
	return res, nil
}

func validateParams(req Request) error {
	p := req.Params
	if !(p.UnitLength > 0) || math.IsInf(p.UnitLength, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "unit length must be positive, got %v", p.UnitLength)
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", p.Scale)
	}
	if math.IsNaN(p.GroutWidth) || math.IsInf(p.GroutWidth, 0) {
		return errors.New(errors.ErrCodeInvalidGeometry, "grout width %v is not finite", p.GroutWidth)
	}
	if !req.Anchor.IsFinite() || !req.Offset.IsFinite() {
		return errors.New(errors.ErrCodeInvalidGeometry, "anchor and offset must be finite")
	}
	return nil
}

func checkGeometry(g pattern.Geometry) error {
	switch {
	case len(g.BoundingBox) < 3:
		return errors.New(errors.ErrCodeMissingInput, "pattern %q has no bounding box", g.Name)
	case len(g.Outline) < 3:
		return errors.New(errors.ErrCodeMissingInput, "pattern %q has no outline", g.Name)
	case len(g.Connection) == 0:
		return errors.New(errors.ErrCodeMissingInput, "pattern %q has no connection vectors", g.Name)
	case len(g.Tiles) == 0:
		return errors.New(errors.ErrCodeMissingInput, "pattern %q has no tiles", g.Name)
	}
	if !g.BoundingBox.IsFinite() || !geometry.Polygon(g.Connection).IsFinite() {
		return errors.New(errors.ErrCodeInvalidGeometry, "pattern %q has non-finite geometry", g.Name)
	}
	return nil
}
