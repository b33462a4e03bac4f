package pattern

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vertex is one pattern-unit vertex. GroutAxisX and GroutAxisY are the grout
// multiples added along each axis during [Transform].
type Vertex struct {
	X, Y       float64
	GroutAxisX float64
	GroutAxisY float64
}

// V returns a vertex without grout offsets.
func V(x, y float64) Vertex { return Vertex{X: x, Y: y} }

// Ring is an ordered list of vertices. Depending on context it is a closed
// polygon or a list of displacement vectors.
type Ring []Vertex

// MarshalJSON encodes v as [dx, dy], or [dx, dy, groutAxisY, groutAxisX]
// when either grout axis is set.
func (v Vertex) MarshalJSON() ([]byte, error) {
	if v.GroutAxisX == 0 && v.GroutAxisY == 0 {
		return json.Marshal([]float64{v.X, v.Y})
	}
	return json.Marshal([]float64{v.X, v.Y, v.GroutAxisY, v.GroutAxisX})
}

// UnmarshalJSON decodes a 2 or 4 element vertex tuple.
func (v *Vertex) UnmarshalJSON(data []byte) error {
	var xs []float64
	if err := json.Unmarshal(data, &xs); err != nil {
		return fmt.Errorf("vertex: %w", err)
	}
	return v.set(xs)
}

// UnmarshalTOML decodes a 2 or 4 element TOML array of integers or floats.
func (v *Vertex) UnmarshalTOML(data any) error {
	xs, err := tomlFloats(data)
	if err != nil {
		return fmt.Errorf("vertex: %w", err)
	}
	return v.set(xs)
}

func (v *Vertex) set(xs []float64) error {
	switch len(xs) {
	case 2:
		*v = Vertex{X: xs[0], Y: xs[1]}
	case 4:
		*v = Vertex{X: xs[0], Y: xs[1], GroutAxisY: xs[2], GroutAxisX: xs[3]}
	default:
		return fmt.Errorf("vertex must have 2 or 4 elements, got %d", len(xs))
	}
	for _, f := range xs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("vertex has non-finite component %v", f)
		}
	}
	return nil
}

// Proportion is a tile size ratio num/den applied to the unit length.
type Proportion struct {
	Num, Den float64
}

// Ratio returns Num/Den.
func (p Proportion) Ratio() float64 { return p.Num / p.Den }

// MarshalJSON encodes p as [num, den].
func (p Proportion) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Num, p.Den})
}

// UnmarshalJSON decodes p from [num, den].
func (p *Proportion) UnmarshalJSON(data []byte) error {
	var xs []float64
	if err := json.Unmarshal(data, &xs); err != nil {
		return fmt.Errorf("proportion: %w", err)
	}
	return p.set(xs)
}

// UnmarshalTOML decodes p from a two element TOML array.
func (p *Proportion) UnmarshalTOML(data any) error {
	xs, err := tomlFloats(data)
	if err != nil {
		return fmt.Errorf("proportion: %w", err)
	}
	return p.set(xs)
}

func (p *Proportion) set(xs []float64) error {
	if len(xs) != 2 {
		return fmt.Errorf("proportion must have 2 elements, got %d", len(xs))
	}
	if !(xs[0] > 0) || !(xs[1] > 0) || math.IsInf(xs[0], 0) || math.IsInf(xs[1], 0) {
		return fmt.Errorf("proportion %v/%v must be positive", xs[0], xs[1])
	}
	p.Num, p.Den = xs[0], xs[1]
	return nil
}

func tomlFloats(data any) ([]float64, error) {
	arr, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", data)
	}
	out := make([]float64, len(arr))
	for i, x := range arr {
		switch n := x.(type) {
		case int64:
			out[i] = float64(n)
		case float64:
			out[i] = n
		default:
			return nil, fmt.Errorf("element %d: expected number, got %T", i, x)
		}
	}
	return out, nil
}
