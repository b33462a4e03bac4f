// Package pkg provides the core libraries for Tilelay tile layouts.
//
// # Overview
//
// Tilelay takes a repeating tile pattern and a surface (a wall or floor
// outline with openings) and works out which tiles cover the surface, which
// must be cut, and how many distinct cut shapes are needed. The pkg
// directory is organized into three areas:
//
//  1. Engine - geometry, clipping, patterns, the lattice walk and the layout
//  2. Host - pipeline orchestration, project configuration and caching
//  3. Serialization - layout documents on disk
//
// # Architecture
//
// The typical data flow through Tilelay:
//
//	Pattern catalog (JSON/TOML) + surface (mm)
//	         ↓
//	    [pattern] package (resolve proportion, transform to px)
//	         ↓
//	    [lattice] package (breadth-first walk over group anchors)
//	         ↓
//	    [layout] package (clip, classify, count, measure)
//	         ↓
//	    layout.json / tile count table
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tilelay/pkg/layout"
//	    "github.com/matzehuels/tilelay/pkg/pattern"
//	    "github.com/matzehuels/tilelay/pkg/surface"
//	)
//
//	cat, _ := pattern.LoadFile("patterns.json")
//	def, _ := cat.Lookup("Running Bond")
//
//	res, _ := layout.Compute(layout.Request{
//	    Pattern:   def,
//	    Params:    pattern.Params{UnitLength: 50, GroutWidth: 2, Scale: 0.25},
//	    Surface:   surf, // pixel space
//	    Placement: layout.TopLeft,
//	})
//	fmt.Println(res.Stats.TilesDrawn, res.Counts.Len())
//
// # Main Packages
//
// ## Engine
//
// [geometry] - Points, polygons and rectangles with JSON wire shapes and
// finiteness checks.
//
// [clip] - Polygon boolean operations on fixed-point snapped coordinates,
// backed by github.com/ctessum/geom.
//
// [pattern] - Pattern catalogs: validation, proportion resolution and the
// transform from abstract pattern units to pixels.
//
// [surface] - Surfaces with holes: the effective surface, intersection and
// scale derivation.
//
// [lattice] - The anchor walk over a pattern's translation vectors, with an
// optional trace exported as DOT or SVG.
//
// [layout] - The layout computation: group clipping, tile classification,
// shape signatures, counts and areas.
//
// ## Host
//
// [pipeline] - Options, validation and defaults, a cached [pipeline.Runner]
// and the per-wall last-good-layout store. Used by the CLI and the HTTP API.
//
// [config] - TOML project files describing walls, the catalog and the cache.
//
// [cache] - Cache backends (memory, file, Redis, MongoDB) and cache keys.
//
// [observability] - Hooks for catalog loads, layouts, cache and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// ## Serialization
//
// [io] - Versioned layout.json documents.
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/geometry
// [clip]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/clip
// [pattern]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/pattern
// [surface]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/surface
// [lattice]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/lattice
// [layout]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/pipeline#Runner
// [config]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/tilelay/pkg/io
package pkg
