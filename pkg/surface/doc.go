// Package surface models the area being tiled: an outer polygon with zero or
// more holes, and the boolean queries the layout engine runs against it.
//
// A [Surface] is plain data. A [Model] is built from it once per layout pass
// by [NewModel], which subtracts the holes from the outer polygon and caches
// the resulting effective surface and its area. All queries on a Model are
// read-only, so one Model may be shared by concurrent readers.
//
// Surfaces are usually configured in millimetres and converted to pixels
// with [Surface.Scale] using a scale from [DeriveScale].
package surface
