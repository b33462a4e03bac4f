package pattern

import (
	"github.com/matzehuels/tilelay/pkg/geometry"
)

// TileTypeID identifies the kind of tile occupying a slot, for pricing and
// reporting.
type TileTypeID int

// Params are the physical parameters of a transform.
type Params struct {
	UnitLength float64 `json:"unitLength"` // mm per pattern unit
	GroutWidth float64 `json:"groutWidth"` // mm
	Scale      float64 `json:"scale"`      // px per mm
}

// Resolved is a definition with one proportion selected.
type Resolved struct {
	Definition *Definition
	Index      int
	Proportion Proportion
	TileTypes  []TileTypeID
}

// Geometry is a pattern in pixel space, ready for the layout engine.
type Geometry struct {
	Name        string
	Outline     geometry.Polygon
	BoundingBox geometry.Polygon
	Connection  []geometry.Point
	Tiles       []geometry.Polygon
	TileTypes   []TileTypeID
	Anchor      geometry.Point
}

// Transform maps one vertex into pixel space.
func Transform(v Vertex, prop Proportion, p Params) geometry.Point {
	k := p.UnitLength * prop.Ratio()
	return geometry.Point{
		X: (v.X*k + p.GroutWidth*v.GroutAxisX) * p.Scale,
		Y: (v.Y*k + p.GroutWidth*v.GroutAxisY) * p.Scale,
	}
}

// TransformRing maps every vertex of r into pixel space.
func TransformRing(r Ring, prop Proportion, p Params) geometry.Polygon {
	if r == nil {
		return nil
	}
	out := make(geometry.Polygon, len(r))
	for i, v := range r {
		out[i] = Transform(v, prop, p)
	}
	return out
}

// Transform maps the resolved pattern into pixel space. The outline,
// bounding box, connection vectors and every tile go through the same
// vertex transform.
func (r Resolved) Transform(p Params) Geometry {
	d := r.Definition
	g := Geometry{
		Name:        d.Name,
		Outline:     TransformRing(d.PatternVertices, r.Proportion, p),
		BoundingBox: TransformRing(d.BoundingBox, r.Proportion, p),
		Connection:  TransformRing(d.Connection, r.Proportion, p),
		Tiles:       make([]geometry.Polygon, len(d.TileVertices)),
		TileTypes:   r.TileTypes,
	}
	for i, t := range d.TileVertices {
		g.Tiles[i] = TransformRing(t, r.Proportion, p)
	}
	if d.Anchor != nil {
		g.Anchor = Transform(*d.Anchor, r.Proportion, p)
	}
	if g.TileTypes == nil {
		g.TileTypes = d.TileTypes(r.Index)
	}
	return g
}

// GroupSize returns the width and height of the transformed bounding box.
func (g Geometry) GroupSize() geometry.Point {
	return g.BoundingBox.Bounds().Size()
}
