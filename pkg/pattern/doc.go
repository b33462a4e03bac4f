// Package pattern holds tile pattern definitions and the transform that maps
// them from abstract pattern units into pixel space.
//
// # Catalog
//
// A [Catalog] is the decoded form of a TilePatterns document: a default
// scale, the minimum tile length in millimetres, and a list of named
// [Definition] values. Catalogs are read from JSON or TOML with [Load] and
// [LoadFile]. Every vertex is validated while decoding, so a catalog that
// loads successfully never carries malformed vertex tuples.
//
// Look a pattern up by name with [Catalog.Lookup], then pick one of its tile
// proportions with [Definition.Resolve]:
//
//	def, err := cat.Lookup("Square Grid Pattern") // PATTERN_NOT_FOUND
//	r, err := def.Resolve(0)                      // PROPORTION_NOT_FOUND
//	geom := r.Transform(pattern.Params{UnitLength: 50, Scale: 0.2})
//
// # Vertices
//
// A [Vertex] is written as [dx, dy] or [dx, dy, groutAxisY, groutAxisX].
// The grout axes say how many grout widths the vertex is pushed along each
// axis. [Transform] maps a vertex to
//
//	x = (dx*unit*num/den + grout*groutAxisX) * scale
//	y = (dy*unit*num/den + grout*groutAxisY) * scale
//
// # Tile types
//
// Each tile slot of a definition carries a [TileTypeID] taken from the
// definition's propIndices for the chosen proportion. Downstream consumers
// (pricing, hints) key on the ID rather than on slot position.
package pattern
