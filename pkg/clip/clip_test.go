package clip

import (
	"math"
	"testing"

	"github.com/matzehuels/tilelay/pkg/geometry"
)

func rect(x0, y0, x1, y1 float64) geometry.Polygon {
	return geometry.Polygon{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < AreaTolerance(Scale)
}

func TestAreaTolerance(t *testing.T) {
	if got := AreaTolerance(1e4); math.Abs(got-1e-5) > 1e-18 {
		t.Errorf("AreaTolerance(1e4) = %v, want 1e-5", got)
	}
}

func TestEngineArea(t *testing.T) {
	e := New()
	tests := []struct {
		name  string
		paths Paths
		want  float64
	}{
		{"empty", nil, 0},
		{"square", Paths{rect(0, 0, 10, 10)}, 100},
		{"reversed square", Paths{{{X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}}, 100},
		{"square with hole", Paths{rect(0, 0, 100, 100), rect(40, 40, 60, 60)}, 9600},
		{"two disjoint squares", Paths{rect(0, 0, 10, 10), rect(20, 0, 30, 10)}, 200},
		{"island in hole", Paths{rect(0, 0, 100, 100), rect(20, 20, 80, 80), rect(40, 40, 60, 60)}, 10000 - 3600 + 400},
		{"closing vertex repeated", Paths{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}}}, 100},
		{"non-finite ring ignored", Paths{{{X: 0, Y: 0}, {X: math.NaN(), Y: 0}, {X: 1, Y: 1}}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Area(tt.paths); !near(got, tt.want) {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngineIntersection(t *testing.T) {
	e := New()
	tests := []struct {
		name    string
		subject geometry.Polygon
		clip    Paths
		want    float64
	}{
		{"overlap", rect(0, 0, 10, 10), Paths{rect(5, 5, 15, 15)}, 25},
		{"contained", rect(2, 2, 4, 4), Paths{rect(0, 0, 10, 10)}, 4},
		{"disjoint", rect(0, 0, 10, 10), Paths{rect(20, 20, 30, 30)}, 0},
		{"edge touching", rect(10, 0, 20, 10), Paths{rect(0, 0, 10, 10)}, 0},
		{"corner touching", rect(10, 10, 20, 20), Paths{rect(0, 0, 10, 10)}, 0},
		{"straddles hole", rect(30, 30, 50, 50), Paths{rect(0, 0, 100, 100), rect(40, 40, 60, 60)}, 400 - 100},
		{"empty clip", rect(0, 0, 10, 10), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Area(e.Intersection(Paths{tt.subject}, tt.clip))
			if !near(got, tt.want) {
				t.Errorf("Area(Intersection()) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngineClipSlopedEdge(t *testing.T) {
	e := New()
	// the hypotenuse crosses every strip boundary between grid lines
	triangle := Paths{{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 0, Y: 7}}}

	var sum float64
	for i := range 30 {
		x := float64(i)
		shape, area := e.Clip(Paths{rect(x, 0, x+1, 10)}, triangle)
		want := 7 - 7*(x+0.5)/30
		if math.Abs(area-want) > 1e-9 {
			t.Errorf("strip %d: area = %v, want %v", i, area, want)
		}
		if len(shape) != 1 {
			t.Errorf("strip %d: %d rings, want 1", i, len(shape))
		}
		sum += area
	}
	if math.Abs(sum-105) > 1e-9 {
		t.Errorf("sum of strips = %v, want 105", sum)
	}

	if shape, area := e.Clip(Paths{rect(40, 0, 50, 10)}, triangle); shape != nil || area != 0 {
		t.Errorf("Clip(disjoint) = %v, %v", shape, area)
	}
}

func TestEngineDifference(t *testing.T) {
	e := New()

	outer := Paths{rect(0, 0, 100, 100)}
	holes := Paths{rect(40, 40, 60, 60), rect(70, 10, 80, 20)}

	got := e.Difference(outer, holes)
	if area := e.Area(got); !near(area, 10000-400-100) {
		t.Errorf("Area(Difference()) = %v, want %v", area, 10000-400-100)
	}

	// No holes returns the snapped subject unchanged.
	same := e.Difference(outer, nil)
	if len(same) != 1 || !near(e.Area(same), 10000) {
		t.Errorf("Difference(outer, nil) = %v", same)
	}
}

func TestEngineSnap(t *testing.T) {
	e := New()
	if got := e.Snap(0.123456); got != 0.1235 {
		t.Errorf("Snap(0.123456) = %v, want 0.1235", got)
	}
	if got := e.Fixed(1.5); got != 15000 {
		t.Errorf("Fixed(1.5) = %v, want 15000", got)
	}
	if got := NewWithScale(-1).Scale(); got != Scale {
		t.Errorf("NewWithScale(-1).Scale() = %v, want %v", got, Scale)
	}
}
