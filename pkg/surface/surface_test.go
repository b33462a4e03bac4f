package surface

import (
	"math"
	"testing"

	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
)

func square(x, y, size float64) geometry.Polygon {
	return geometry.Polygon{
		geometry.Pt(x, y), geometry.Pt(x+size, y),
		geometry.Pt(x+size, y+size), geometry.Pt(x, y+size),
	}
}

func TestValidate(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		s    Surface
		code errors.Code
	}{
		{"ok", Surface{Outer: square(0, 0, 10)}, ""},
		{"ok with hole", Surface{Outer: square(0, 0, 10), Holes: []geometry.Polygon{square(2, 2, 2)}}, ""},
		{"empty outer", Surface{}, errors.ErrCodeMissingInput},
		{"two points", Surface{Outer: geometry.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}}, errors.ErrCodeMissingInput},
		{"nan outer", Surface{Outer: geometry.Polygon{{X: 0, Y: 0}, {X: nan, Y: 0}, {X: 1, Y: 1}}}, errors.ErrCodeInvalidGeometry},
		{"degenerate hole", Surface{Outer: square(0, 0, 10), Holes: []geometry.Polygon{{{X: 1, Y: 1}}}}, errors.ErrCodeInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestScale(t *testing.T) {
	s := Surface{Outer: square(0, 0, 1000), Holes: []geometry.Polygon{square(100, 100, 200)}}
	px := s.Scale(0.2)

	if px.Outer[2] != geometry.Pt(200, 200) {
		t.Errorf("outer corner = %v", px.Outer[2])
	}
	if px.Holes[0][0] != geometry.Pt(20, 20) {
		t.Errorf("hole corner = %v", px.Holes[0][0])
	}
	if s.Outer[2] != geometry.Pt(1000, 1000) {
		t.Error("Scale modified its receiver")
	}
}

func TestDeriveScale(t *testing.T) {
	walls := []Surface{
		{Outer: geometry.Polygon{{X: 0, Y: 0}, {X: 4000, Y: 0}, {X: 4000, Y: 2400}, {X: 0, Y: 2400}}},
		{Outer: geometry.Polygon{{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 3000, Y: 3000}, {X: 0, Y: 3000}}},
	}

	got, err := DeriveScale(DefaultTargetHeight, walls...)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.2 {
		t.Errorf("DeriveScale = %v, want 0.2", got)
	}

	if _, err := DeriveScale(600); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("no surfaces: err = %v", err)
	}
	if _, err := DeriveScale(0, walls...); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero target: err = %v", err)
	}
}
