// Package layout lays a repeating tile pattern onto a surface.
//
// # Overview
//
// [Compute] is a pure function from a [Request] to a [Result]. It transforms
// the pattern into pixel space, walks the pattern lattice breadth-first from
// the seed anchor, and for every visited anchor decides whether the pattern
// group lies fully inside the effective surface, partly inside, or outside:
//
//   - Inside: every tile is drawn unclipped.
//   - Partial: every tile is clipped against the effective surface and drawn
//     when anything of it remains.
//   - Outside: nothing is drawn, but the walk still expands from the anchor.
//
// A neighbor anchor is queued when its group bounding box overlaps the raw
// outer polygon. Holes are ignored for this test so that a hole never cuts
// the walk short.
//
// # Output
//
// [Result.Tiles] lists one [TileGroup] per anchor that drew at least one
// tile, in visit order. Each group always holds one [TileInstance] per tile
// slot of the pattern, drawn or not. Drawn tiles get strictly increasing
// IDs starting at 1 in visit-then-slot order.
//
// [Result.Counts] groups drawn tiles by shape: each tile is moved to its own
// bounding-box origin, rounded to 1/100 px and reduced to a signature string.
// Tiles with the same signature are congruent by translation.
//
// Areas are reported in px² and in m². The m² figures assume the transform
// scale is in px per mm.
//
// # Determinism
//
// Identical requests produce identical results, including tile IDs and the
// order of count entries. The engine holds no state between calls; callers
// that recompute on every input change must run calls one at a time if they
// write into shared state.
package layout
