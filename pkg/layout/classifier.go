package layout

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/surface"
)

// classifier assigns tile IDs and groups drawn tiles by shape.
type classifier struct {
	model  *surface.Model
	scale  float64 // px per mm, for edge labels
	counts *TileCounts
	nextID int
}

func newClassifier(m *surface.Model, scale float64) *classifier {
	return &classifier{model: m, scale: scale, counts: newTileCounts(), nextID: 1}
}

// add gives every drawn tile of g the next ID and counts it.
func (c *classifier) add(g *TileGroup) {
	for i := range g.Tiles {
		t := &g.Tiles[i]
		if !t.Draw {
			continue
		}
		t.ID = c.nextID
		c.nextID++

		polys := c.normalize(t.Shape)
		c.counts.add(signature(polys), t.ID, polys, c.edgeLabel(t.Shape), t.Cut, t.Type)
	}
}

// normalize snaps the shape onto nearby surface vertices, moves it to the
// origin of its own bounds and rounds to 1/100 px.
func (c *classifier) normalize(shape []geometry.Polygon) []geometry.Polygon {
	snapped := make([]geometry.Polygon, len(shape))
	for i, r := range shape {
		snapped[i] = make(geometry.Polygon, len(r))
		for j, v := range r {
			snapped[i][j] = c.model.Snap(v)
		}
	}
	origin := geometry.BoundsOf(snapped).Min
	for _, r := range snapped {
		for j, v := range r {
			r[j] = geometry.Point{X: round2(v.X - origin.X), Y: round2(v.Y - origin.Y)}
		}
	}
	return snapped
}

// edgeLabel lists every edge length in mm, rounded to whole millimetres.
func (c *classifier) edgeLabel(shape []geometry.Polygon) string {
	var parts []string
	for _, r := range shape {
		for _, l := range r.EdgeLengths() {
			parts = append(parts, fmt.Sprintf("%.0f", l/c.scale))
		}
	}
	return strings.Join(parts, ",")
}

// signature sorts the vertices of each ring and then the rings themselves,
// so that the result does not depend on start vertex or orientation.
func signature(polys []geometry.Polygon) string {
	rings := make([]string, len(polys))
	for i, r := range polys {
		pts := slices.Clone(r)
		slices.SortFunc(pts, func(a, b geometry.Point) int {
			return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
		})
		coords := make([]string, 0, 2*len(pts))
		for _, p := range pts {
			coords = append(coords, fmt.Sprintf("%.2f", p.X), fmt.Sprintf("%.2f", p.Y))
		}
		rings[i] = strings.Join(coords, ",")
	}
	slices.Sort(rings)
	return strings.Join(rings, ";")
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
