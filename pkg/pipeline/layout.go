package pipeline

import (
	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/pattern"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Request converts validated options into an engine request. Surface and
// offset are converted from millimetres to pixels; unit length and grout
// stay physical because the pattern transform applies the scale itself.
func Request(def *pattern.Definition, opts Options, unitLength float64) layout.Request {
	return layout.Request{
		Pattern:    def,
		Proportion: opts.Proportion,
		Params: pattern.Params{
			UnitLength: unitLength,
			GroutWidth: opts.GroutWidth,
			Scale:      opts.Scale,
		},
		Surface:   opts.Surface.Scale(opts.Scale),
		Placement: layout.Placement(opts.Placement),
		Offset:    opts.Offset.Scale(opts.Scale),
	}
}

// GenerateLayout computes a layout without caching.
func GenerateLayout(def *pattern.Definition, opts Options, unitLength float64, extra ...layout.Option) (*layout.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	layoutOpts := []layout.Option{layout.WithLogger(opts.Logger)}
	if opts.Ops != nil {
		layoutOpts = append(layoutOpts, layout.WithOps(opts.Ops))
	}
	layoutOpts = append(layoutOpts, extra...)
	return layout.Compute(Request(def, opts, unitLength), layoutOpts...)
}
