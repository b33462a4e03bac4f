package layout

import (
	"strings"

	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
)

// Placement names where the seed pattern group sits on the surface. Y grows
// downwards, so Top is the minimum Y of the surface.
type Placement string

const (
	TopLeft      Placement = "TopLeft"
	TopCenter    Placement = "TopCenter"
	TopRight     Placement = "TopRight"
	LeftCenter   Placement = "LeftCenter"
	Center       Placement = "Center"
	RightCenter  Placement = "RightCenter"
	BottomLeft   Placement = "BottomLeft"
	BottomCenter Placement = "BottomCenter"
	BottomRight  Placement = "BottomRight"
)

// Placements returns every placement in reading order.
func Placements() []Placement {
	return []Placement{
		TopLeft, TopCenter, TopRight,
		LeftCenter, Center, RightCenter,
		BottomLeft, BottomCenter, BottomRight,
	}
}

// ParsePlacement resolves a placement name case-insensitively.
func ParsePlacement(s string) (Placement, error) {
	for _, p := range Placements() {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidPlacement, "unknown placement %q", s)
}

// Place returns the anchor that puts a group of the given size at
// placement p within bounds.
func Place(p Placement, bounds geometry.Rect, group geometry.Point) (geometry.Point, error) {
	var fx, fy float64
	switch p {
	case TopLeft:
		fx, fy = 0, 0
	case TopCenter:
		fx, fy = 0.5, 0
	case TopRight:
		fx, fy = 1, 0
	case LeftCenter:
		fx, fy = 0, 0.5
	case Center:
		fx, fy = 0.5, 0.5
	case RightCenter:
		fx, fy = 1, 0.5
	case BottomLeft:
		fx, fy = 0, 1
	case BottomCenter:
		fx, fy = 0.5, 1
	case BottomRight:
		fx, fy = 1, 1
	default:
		return geometry.Point{}, errors.New(errors.ErrCodeInvalidPlacement, "unknown placement %q", string(p))
	}
	return geometry.Point{
		X: bounds.Min.X + (bounds.Width()-group.X)*fx,
		Y: bounds.Min.Y + (bounds.Height()-group.Y)*fy,
	}, nil
}
