package layout

import (
	"math"

	"github.com/matzehuels/tilelay/pkg/clip"
	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/pattern"
	"github.com/matzehuels/tilelay/pkg/surface"
)

// groupClipper places and clips the pattern group at each anchor. Full
// areas are measured on the translated, snapped outline.
type groupClipper struct {
	model *surface.Model
	geom  pattern.Geometry
	tol   float64
}

func newGroupClipper(m *surface.Model, g pattern.Geometry) *groupClipper {
	return &groupClipper{model: m, geom: g, tol: m.Tolerance()}
}

// classify compares the group bounding box at anchor with its intersection
// with the effective surface. A box that only touches the surface is
// outside.
func (c *groupClipper) classify(anchor geometry.Point) GroupClass {
	box := c.geom.BoundingBox.Translate(anchor)
	_, area := c.model.Intersect(box)
	switch {
	case area <= c.tol:
		return GroupOutside
	case math.Abs(area-c.model.Area(clip.Paths{box})) <= c.tol:
		return GroupInside
	default:
		return GroupPartial
	}
}

// admit reports whether a group at anchor overlaps the outer polygon with
// positive area. Holes are not considered.
func (c *groupClipper) admit(anchor geometry.Point) bool {
	return c.model.IntersectOuter(c.geom.BoundingBox.Translate(anchor)) > c.tol
}

// place builds the tile slots of the group at anchor. Tiles come back
// without IDs.
func (c *groupClipper) place(anchor geometry.Point, class GroupClass) TileGroup {
	g := TileGroup{Anchor: anchor, Class: class, Tiles: make([]TileInstance, len(c.geom.Tiles))}
	for i, tile := range c.geom.Tiles {
		t := TileInstance{
			Slot:    i,
			Type:    c.geom.TileTypes[i],
			Outline: tile.Translate(anchor),
		}
		if !t.Outline.IsFinite() {
			g.Tiles[i] = t
			continue
		}
		switch class {
		case GroupInside:
			t.Shape = clip.Paths{t.Outline}
			t.Area = c.model.Area(t.Shape)
			t.Draw = t.Area > c.tol
		case GroupPartial:
			shape, area := c.model.Intersect(t.Outline)
			if area > c.tol {
				full := c.model.Area(clip.Paths{t.Outline})
				t.Draw = true
				t.Area = math.Min(area, full)
				t.Cut = area < full-c.tol
				if t.Cut {
					t.Shape = shape
				} else {
					t.Shape = clip.Paths{t.Outline}
				}
			}
		}
		g.Tiles[i] = t
	}
	return g
}
