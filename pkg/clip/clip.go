package clip

import (
	"math"

	cgeom "github.com/ctessum/geom"

	"github.com/matzehuels/tilelay/pkg/geometry"
)

// Scale is the default number of fixed-point grid units per pixel.
const Scale = 1e4

// AreaTolerance returns the area, in px², below which two areas are treated
// as equal for an engine running at the given fixed-point scale.
func AreaTolerance(scale float64) float64 {
	return 1 / (10 * scale)
}

// Paths is a set of closed rings. Rings nested inside an odd number of other
// rings are holes.
type Paths []geometry.Polygon

// Ops is the boolean polygon engine used by the surface model.
type Ops interface {
	// Difference returns subject minus clip.
	Difference(subject, clip Paths) Paths
	// Intersection returns the region covered by both subject and clip.
	Intersection(subject, clip Paths) Paths
	// Clip is Intersection that also returns the area of the result as
	// computed before the output vertices are snapped to the grid.
	Clip(subject, clip Paths) (Paths, float64)
	// Area returns the hole-aware area of p in px².
	Area(p Paths) float64
}

// Engine is the default [Ops] implementation.
type Engine struct {
	scale float64
}

// New creates an engine at the default [Scale].
func New() *Engine {
	return NewWithScale(Scale)
}

// NewWithScale creates an engine snapping to 1/scale pixels.
// Non-positive or non-finite scales fall back to [Scale].
func NewWithScale(scale float64) *Engine {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = Scale
	}
	return &Engine{scale: scale}
}

// Scale returns the engine's fixed-point grid units per pixel.
func (e *Engine) Scale() float64 { return e.scale }

// Tolerance returns [AreaTolerance] for this engine's scale.
func (e *Engine) Tolerance() float64 { return AreaTolerance(e.scale) }

// Fixed converts v to fixed-point grid units.
func (e *Engine) Fixed(v float64) int64 {
	return int64(math.Round(v * e.scale))
}

// Snap rounds v to the nearest fixed-point grid line.
func (e *Engine) Snap(v float64) float64 {
	return math.Round(v*e.scale) / e.scale
}

// SnapPoint rounds both coordinates of p to the fixed-point grid.
func (e *Engine) SnapPoint(p geometry.Point) geometry.Point {
	return geometry.Point{X: e.Snap(p.X), Y: e.Snap(p.Y)}
}

// Difference implements [Ops].
func (e *Engine) Difference(subject, clip Paths) Paths {
	s := e.toGeom(subject)
	if len(s) == 0 {
		return nil
	}
	c := e.toGeom(clip)
	if len(c) == 0 {
		return e.fromGeom(s)
	}
	return e.fromGeom(s.Difference(c))
}

// Intersection implements [Ops].
func (e *Engine) Intersection(subject, clip Paths) Paths {
	out, _ := e.Clip(subject, clip)
	return out
}

// Clip implements [Ops]. The area is measured on the raw engine output, so
// the areas of pieces cut from a partition of the plane sum to the area of
// clip even where snapped vertices leave a sloped edge.
func (e *Engine) Clip(subject, clip Paths) (Paths, float64) {
	s := e.toGeom(subject)
	c := e.toGeom(clip)
	if len(s) == 0 || len(c) == 0 {
		return nil, 0
	}
	raw := s.Intersection(c)
	out := e.fromGeom(raw)
	if len(out) == 0 {
		return nil, 0
	}
	area := raw.Area()
	if math.IsNaN(area) || area < 0 {
		return out, e.Area(out)
	}
	return out, area
}

// Area implements [Ops]. Each ring contributes its absolute fixed-point
// shoelace area, added at even nesting depth and subtracted at odd depth.
func (e *Engine) Area(p Paths) float64 {
	rings := make([]geometry.Polygon, 0, len(p))
	for _, r := range p {
		if r = e.normalize(r); len(r) >= 3 {
			rings = append(rings, r)
		}
	}

	var total float64
	for i, r := range rings {
		a := float64(e.twiceArea(r))
		if len(rings) > 1 && e.depth(i, rings)%2 == 1 {
			total -= a
		} else {
			total += a
		}
	}
	if total < 0 {
		total = 0
	}
	return total / 2 / (e.scale * e.scale)
}

// twiceArea returns the absolute doubled shoelace area of r in grid units².
// Coordinates are taken relative to the first vertex to keep the products
// small.
func (e *Engine) twiceArea(r geometry.Polygon) int64 {
	x0, y0 := e.Fixed(r[0].X), e.Fixed(r[0].Y)
	var sum int64
	n := len(r)
	for i := range n {
		a, b := r[i], r[(i+1)%n]
		ax, ay := e.Fixed(a.X)-x0, e.Fixed(a.Y)-y0
		bx, by := e.Fixed(b.X)-x0, e.Fixed(b.Y)-y0
		sum += ax*by - bx*ay
	}
	if sum < 0 {
		return -sum
	}
	return sum
}

// depth counts how many other rings contain ring i.
func (e *Engine) depth(i int, rings []geometry.Polygon) int {
	d := 0
	for j, outer := range rings {
		if j == i {
			continue
		}
		if e.ringInside(rings[i], outer) {
			d++
		}
	}
	return d
}

// ringInside reports whether inner lies inside outer, judged by the first
// vertex of inner that is not on outer's boundary.
func (e *Engine) ringInside(inner, outer geometry.Polygon) bool {
	poly := cgeom.Polygon{toGeomRing(outer)}
	for _, v := range inner {
		switch (cgeom.Point{X: v.X, Y: v.Y}).Within(poly) {
		case cgeom.Inside:
			return true
		case cgeom.Outside:
			return false
		}
	}
	return false
}

// normalize snaps r to the grid and drops repeated vertices, including an
// explicit closing vertex. Rings with non-finite vertices come back empty.
func (e *Engine) normalize(r geometry.Polygon) geometry.Polygon {
	if !r.IsFinite() {
		return nil
	}
	out := make(geometry.Polygon, 0, len(r))
	for _, v := range r {
		v = e.SnapPoint(v)
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func (e *Engine) toGeom(p Paths) cgeom.Polygon {
	out := make(cgeom.Polygon, 0, len(p))
	for _, r := range p {
		r = e.normalize(r)
		if len(r) < 3 || e.twiceArea(r) == 0 {
			continue
		}
		out = append(out, toGeomRing(r))
	}
	return out
}

// fromGeom converts an engine result back to snapped rings, dropping rings
// that collapsed to zero area.
func (e *Engine) fromGeom(p cgeom.Polygonal) Paths {
	var out Paths
	for _, poly := range p.Polygons() {
		for _, ring := range poly {
			r := make(geometry.Polygon, 0, len(ring))
			for _, v := range ring {
				r = append(r, geometry.Point{X: v.X, Y: v.Y})
			}
			r = e.normalize(r)
			if len(r) < 3 || e.twiceArea(r) == 0 {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

func toGeomRing(r geometry.Polygon) []cgeom.Point {
	pts := make([]cgeom.Point, len(r))
	for i, v := range r {
		pts[i] = cgeom.Point{X: v.X, Y: v.Y}
	}
	return pts
}

// Ensure Engine implements Ops.
var _ Ops = (*Engine)(nil)
