package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a position or displacement in pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// MarshalJSON encodes p as [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes p from [x, y].
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("point must have 2 coordinates, got %d", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// UnmarshalTOML decodes p from a TOML array [x, y]. Integers are accepted.
func (p *Point) UnmarshalTOML(data any) error {
	arr, ok := data.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("point must be an array of 2 numbers, got %v", data)
	}
	var xy [2]float64
	for i, v := range arr {
		switch n := v.(type) {
		case int64:
			xy[i] = float64(n)
		case float64:
			xy[i] = n
		default:
			return fmt.Errorf("point coordinate %d: expected number, got %T", i, v)
		}
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Polygon is an implicitly closed sequence of vertices.
type Polygon []Point

// Translate returns a copy of p shifted by d.
func (p Polygon) Translate(d Point) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// Scale returns a copy of p with every coordinate multiplied by s.
func (p Polygon) Scale(s float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Scale(s)
	}
	return out
}

// Clone returns a copy of p that shares no storage with it.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// SignedArea returns the shoelace area of p. The sign follows the vertex
// order: positive for counter-clockwise in a y-up frame.
func (p Polygon) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the absolute shoelace area of p.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// EdgeLengths returns the length of every edge, including the closing edge.
func (p Polygon) EdgeLengths() []float64 {
	n := len(p)
	if n < 2 {
		return nil
	}
	out := make([]float64, n)
	for i := range n {
		out[i] = Dist(p[i], p[(i+1)%n])
	}
	return out
}

// Bounds returns the smallest axis-aligned rectangle containing p.
// The zero Rect is returned for an empty polygon.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		r = r.Extend(v)
	}
	return r
}

// IsFinite reports whether every vertex of p is finite.
func (p Polygon) IsFinite() bool {
	for _, v := range p {
		if !v.IsFinite() {
			return false
		}
	}
	return true
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// Extend grows r to include pt.
func (r Rect) Extend(pt Point) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, pt.X), math.Min(r.Min.Y, pt.Y)},
		Max: Point{math.Max(r.Max.X, pt.X), math.Max(r.Max.Y, pt.Y)},
	}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return r.Extend(o.Min).Extend(o.Max)
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Size returns the width and height of r as a displacement.
func (r Rect) Size() Point { return Point{r.Width(), r.Height()} }

// BoundsOf returns the bounds of all polygons together.
func BoundsOf(polys []Polygon) Rect {
	var (
		r     Rect
		found bool
	)
	for _, p := range polys {
		if len(p) == 0 {
			continue
		}
		if !found {
			r, found = p.Bounds(), true
			continue
		}
		r = r.Union(p.Bounds())
	}
	return r
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
