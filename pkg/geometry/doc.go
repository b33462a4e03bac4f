// Package geometry provides the planar value types shared by the tiling
// engine: points, simple polygons and axis-aligned rectangles.
//
// All coordinates are pixel-space float64 values. Polygons are implicitly
// closed (the last vertex connects back to the first) and are assumed to be
// simple. Points serialize to JSON as two-element arrays so layout files keep
// the compact [x, y] shape used by pattern catalogs:
//
//	[[0, 0], [10, 0], [10, 10], [0, 10]]
//
// Boolean operations (intersection, difference) live in package clip; this
// package only holds the arithmetic that does not need a clipping engine.
package geometry
