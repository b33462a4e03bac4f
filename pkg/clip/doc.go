// Package clip isolates the polygon boolean operations used by the tiling
// engine behind the [Ops] interface.
//
// # Fixed-point coordinates
//
// Every coordinate handed to an [Engine] is snapped to a fixed-point grid of
// 1/[Scale] pixels before the operation runs, and results are snapped again
// on the way out. Areas are computed with an integer shoelace sum on the
// snapped coordinates, so two polygons that share an edge produce exactly the
// same area contribution on both sides of it.
//
// Comparisons against areas must use [AreaTolerance] rather than exact
// equality. The tolerance is derived from the fixed-point scale: one tenth of
// a grid unit, which is 1e-5 px² at the default scale.
//
// # Engine
//
// The default [Engine] delegates the sweep-line work to
// github.com/ctessum/geom. Rings passed in a single [Paths] value must not
// overlap one another; holes are expressed by nesting. Callers that need a
// different algorithm implement [Ops] directly.
package clip
