package surface

import (
	"math"

	"github.com/matzehuels/tilelay/pkg/clip"
	"github.com/matzehuels/tilelay/pkg/geometry"
)

// snapRadius is the snapping distance in fixed-point grid units.
const snapRadius = 10

// Model is a surface prepared for repeated queries.
type Model struct {
	surface  Surface
	ops      clip.Ops
	scale    float64
	outer    clip.Paths
	eff      clip.Paths
	effArea  float64
	vertices []geometry.Point
}

// NewModel validates s and precomputes its effective surface. A nil ops uses
// the default [clip.Engine].
func NewModel(s Surface, ops clip.Ops) (*Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if ops == nil {
		ops = clip.New()
	}
	m := &Model{
		surface: s,
		ops:     ops,
		scale:   clip.Scale,
		outer:   clip.Paths{s.Outer},
	}
	if sc, ok := ops.(interface{ Scale() float64 }); ok {
		m.scale = sc.Scale()
	}

	holes := make(clip.Paths, len(s.Holes))
	copy(holes, s.Holes)
	m.eff = ops.Difference(m.outer, holes)
	m.effArea = ops.Area(m.eff)
	for _, r := range m.eff {
		m.vertices = append(m.vertices, r...)
	}
	return m, nil
}

// Surface returns the surface the model was built from.
func (m *Model) Surface() Surface { return m.surface }

// Scale returns the fixed-point grid units per pixel of the underlying
// engine.
func (m *Model) Scale() float64 { return m.scale }

// Tolerance returns the area below which two areas compare equal.
func (m *Model) Tolerance() float64 { return clip.AreaTolerance(m.scale) }

// Effective returns the outer polygon minus all holes. The result may hold
// several disjoint rings; callers must not modify it.
func (m *Model) Effective() clip.Paths { return m.eff }

// EffectiveArea returns the area of [Model.Effective] in px².
func (m *Model) EffectiveArea() float64 { return m.effArea }

// Area returns the hole-aware area of p in px².
func (m *Model) Area(p clip.Paths) float64 { return m.ops.Area(p) }

// Intersect clips p against the effective surface and returns the clipped
// rings with their unsnapped area.
func (m *Model) Intersect(p geometry.Polygon) (clip.Paths, float64) {
	return m.ops.Clip(clip.Paths{p}, m.eff)
}

// IntersectOuter returns the area of p inside the raw outer polygon, holes
// ignored.
func (m *Model) IntersectOuter(p geometry.Polygon) float64 {
	return m.ops.Area(m.ops.Intersection(clip.Paths{p}, m.outer))
}

// Snap moves pt onto the nearest vertex of the effective surface when one
// lies within a few grid units. Otherwise pt is returned unchanged.
func (m *Model) Snap(pt geometry.Point) geometry.Point {
	limit := snapRadius / m.scale
	best, bestDist := pt, math.Inf(1)
	for _, v := range m.vertices {
		if d := geometry.Dist(pt, v); d <= limit && d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}
