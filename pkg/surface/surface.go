package surface

import (
	"math"

	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
)

// DefaultTargetHeight is the pixel height the tallest surface is scaled to.
const DefaultTargetHeight = 600

// Surface is an outer polygon minus its holes. Holes are expected to lie
// inside the outer polygon and not to overlap each other.
type Surface struct {
	Outer geometry.Polygon   `json:"outer" toml:"outer"`
	Holes []geometry.Polygon `json:"holes,omitempty" toml:"holes"`
}

// Scale returns a copy of s with every coordinate multiplied by k.
func (s Surface) Scale(k float64) Surface {
	out := Surface{Outer: s.Outer.Scale(k)}
	if s.Holes != nil {
		out.Holes = make([]geometry.Polygon, len(s.Holes))
		for i, h := range s.Holes {
			out.Holes[i] = h.Scale(k)
		}
	}
	return out
}

// Bounds returns the bounding rectangle of the outer polygon.
func (s Surface) Bounds() geometry.Rect {
	return s.Outer.Bounds()
}

// Validate checks that s can be handed to [NewModel].
func (s Surface) Validate() error {
	if len(s.Outer) < 3 {
		return errors.New(errors.ErrCodeMissingInput, "surface outline needs at least 3 vertices, got %d", len(s.Outer))
	}
	if !s.Outer.IsFinite() {
		return errors.New(errors.ErrCodeInvalidGeometry, "surface outline has non-finite coordinates")
	}
	for i, h := range s.Holes {
		if len(h) < 3 {
			return errors.New(errors.ErrCodeInvalidGeometry, "hole %d needs at least 3 vertices, got %d", i, len(h))
		}
		if !h.IsFinite() {
			return errors.New(errors.ErrCodeInvalidGeometry, "hole %d has non-finite coordinates", i)
		}
	}
	return nil
}

// DeriveScale returns the px-per-unit scale that maps the tallest of the
// given surfaces to targetHeight pixels.
func DeriveScale(targetHeight float64, surfaces ...Surface) (float64, error) {
	if !(targetHeight > 0) || math.IsInf(targetHeight, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "target height must be positive, got %v", targetHeight)
	}
	var tallest float64
	for _, s := range surfaces {
		if h := s.Bounds().Height(); h > tallest {
			tallest = h
		}
	}
	if !(tallest > 0) || math.IsInf(tallest, 0) {
		return 0, errors.New(errors.ErrCodeInvalidGeometry, "no surface with positive height")
	}
	return targetHeight / tallest, nil
}
