// Package pipeline runs tile layouts for the CLI and the HTTP API.
//
// The engine in package layout is a pure function over pixel-space
// geometry. This package is the host around it: it takes physical
// (millimetre) input, resolves the pattern from a catalog, derives the
// pixel scale, converts the surface, runs the engine and caches the
// result. Both entry points share it so they behave identically.
//
// # Usage
//
// Create a Runner and compute a layout:
//
//	cat, err := pipeline.LoadCatalog(ctx, "patterns.json")
//	runner := pipeline.NewRunner(cat, cache, nil, logger)
//	res, err := runner.Layout(ctx, pipeline.Options{
//	    Pattern: "Square Grid Pattern",
//	    Surface: surface.Surface{Outer: outlineMM},
//	})
//
// # Walls
//
// A [Walls] store keeps the last good layout of each wall. When an update
// names an unknown pattern or proportion the error is logged and the
// previous layout stays in place, so an interactive editor never shows an
// empty wall because of a typo.
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/clip"
	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/surface"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTargetHeight is the pixel height the tallest surface is scaled
	// to when no scale is given.
	DefaultTargetHeight = surface.DefaultTargetHeight

	// DefaultUnitLength is the base tile length in millimetres used when
	// neither the request nor the catalog sets one.
	DefaultUnitLength = 50.0

	// DefaultPlacement positions the seed group at the top-left corner.
	DefaultPlacement = layout.TopLeft

	// DefaultWall is the wall a request applies to when it names none.
	DefaultWall = "east"
)

// Format constants for lattice trace output.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported trace formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains everything one layout run needs.
// This struct supports JSON serialization for API requests.
type Options struct {
	Wall       string `json:"wall,omitempty"`
	Pattern    string `json:"pattern"`
	Proportion int    `json:"proportion"`

	// Physical dimensions, in millimetres.
	UnitLength float64         `json:"unit_length,omitempty"`
	GroutWidth float64         `json:"grout_width,omitempty"`
	Surface    surface.Surface `json:"surface"`
	Offset     geometry.Point  `json:"offset"`

	// Scale is px per mm. When zero it is derived from TargetHeight and
	// ScaleSurfaces, or from Surface alone.
	Scale         float64           `json:"scale,omitempty"`
	TargetHeight  float64           `json:"target_height,omitempty"`
	ScaleSurfaces []surface.Surface `json:"-"`

	Placement string `json:"placement,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Ops    clip.Ops    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Wall is the wall the layout belongs to.
	Wall string `json:"wall"`

	// Key is the cache key of the layout.
	Key string `json:"key"`

	// Scale is the px-per-mm factor the layout was computed with.
	Scale float64 `json:"scale"`

	// Layout is the engine result.
	Layout *layout.Result `json:"layout"`

	// Duration is the time spent computing, zero on a cache hit.
	Duration time.Duration `json:"duration"`

	// CacheHit is true when the layout came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a trace format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Wall == "" {
		o.Wall = DefaultWall
	}
	if err := errors.ValidateWallName(o.Wall); err != nil {
		return err
	}
	if o.Pattern == "" {
		return errors.New(errors.ErrCodeMissingInput, "pattern is required")
	}
	if err := errors.ValidatePatternName(o.Pattern); err != nil {
		return err
	}
	if o.Proportion < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "proportion must not be negative")
	}
	if err := o.Surface.Validate(); err != nil {
		return err
	}
	if !isFinite(o.UnitLength) || o.UnitLength < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "unit_length must be a non-negative number")
	}
	if !isFinite(o.GroutWidth) || o.GroutWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grout_width must be a non-negative number")
	}
	if !o.Offset.IsFinite() {
		return errors.New(errors.ErrCodeInvalidInput, "offset must be finite")
	}

	if o.Placement == "" {
		o.Placement = string(DefaultPlacement)
	}
	p, err := layout.ParsePlacement(o.Placement)
	if err != nil {
		return err
	}
	o.Placement = string(p)

	if o.TargetHeight == 0 {
		o.TargetHeight = DefaultTargetHeight
	}
	if o.Scale == 0 {
		surfaces := o.ScaleSurfaces
		if len(surfaces) == 0 {
			surfaces = []surface.Surface{o.Surface}
		}
		if o.Scale, err = surface.DeriveScale(o.TargetHeight, surfaces...); err != nil {
			return err
		}
	}
	if !(o.Scale > 0) || !isFinite(o.Scale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
// Call after ValidateAndSetDefaults.
func (o *Options) LayoutKeyOpts(unitLength float64) (cache.LayoutKeyOpts, error) {
	surfaceHash, err := cache.HashJSON(o.Surface)
	if err != nil {
		return cache.LayoutKeyOpts{}, err
	}
	return cache.LayoutKeyOpts{
		Pattern:     o.Pattern,
		Proportion:  o.Proportion,
		UnitLength:  unitLength,
		GroutWidth:  o.GroutWidth,
		Scale:       o.Scale,
		Placement:   o.Placement,
		Offset:      [2]float64{o.Offset.X, o.Offset.Y},
		SurfaceHash: surfaceHash,
	}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
