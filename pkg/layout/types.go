package layout

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/tilelay/pkg/clip"
	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/pattern"
)

// GroupClass is the relation of a pattern group to the effective surface.
type GroupClass int

const (
	GroupOutside GroupClass = iota
	GroupPartial
	GroupInside
)

var groupClassNames = [...]string{"outside", "partial", "inside"}

func (c GroupClass) String() string {
	if c < 0 || int(c) >= len(groupClassNames) {
		return fmt.Sprintf("GroupClass(%d)", int(c))
	}
	return groupClassNames[c]
}

// MarshalText encodes c by name.
func (c GroupClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes a class name.
func (c *GroupClass) UnmarshalText(b []byte) error {
	for i, n := range groupClassNames {
		if n == string(b) {
			*c = GroupClass(i)
			return nil
		}
	}
	return fmt.Errorf("unknown group class %q", b)
}

// TileInstance is one tile slot of a placed pattern group.
type TileInstance struct {
	Slot    int                `json:"slot"`
	Type    pattern.TileTypeID `json:"type"`
	Outline geometry.Polygon   `json:"outline"`         // unclipped, in surface coordinates
	Shape   clip.Paths         `json:"shape,omitempty"` // visible region when drawn
	Area    float64            `json:"area,omitempty"`  // visible area in px²
	Draw    bool               `json:"draw"`
	Cut     bool               `json:"cut,omitempty"`
	ID      int                `json:"id,omitempty"` // 0 when not drawn
}

// TileGroup is every tile slot placed at one lattice anchor.
type TileGroup struct {
	Anchor geometry.Point `json:"anchor"`
	Class  GroupClass     `json:"class"`
	Tiles  []TileInstance `json:"tiles"`
}

// Drawn returns the number of drawn tiles in g.
func (g TileGroup) Drawn() int {
	n := 0
	for _, t := range g.Tiles {
		if t.Draw {
			n++
		}
	}
	return n
}

// AreaReport holds the covered and effective areas. The m² values are
// unrounded; use [Round2] for display.
type AreaReport struct {
	TileAreaCoveredPx      float64 `json:"tileAreaCoveredPx"`
	EffectiveSurfaceAreaPx float64 `json:"effectiveSurfaceAreaPx"`
	TileAreaCovered        float64 `json:"tileAreaCovered"`      // m²
	EffectiveSurfaceArea   float64 `json:"effectiveSurfaceArea"` // m²
}

// Coverage returns covered/effective area, or 0 for an empty surface.
func (a AreaReport) Coverage() float64 {
	if a.EffectiveSurfaceAreaPx == 0 {
		return 0
	}
	return a.TileAreaCoveredPx / a.EffectiveSurfaceAreaPx
}

// squareMetres converts px² to m² for a px-per-mm scale.
func squareMetres(px, scale float64) float64 {
	return px / (scale * scale) / 1e6
}

// Round2 rounds v to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Stats counts what happened during a layout pass.
type Stats struct {
	AnchorsVisited   int `json:"anchorsVisited"`
	AnchorsRejected  int `json:"anchorsRejected"`
	GroupsInside     int `json:"groupsInside"`
	GroupsPartial    int `json:"groupsPartial"`
	GroupsOutside    int `json:"groupsOutside"`
	TilesDrawn       int `json:"tilesDrawn"`
	TilesCut         int `json:"tilesCut"`
	TilesHidden      int `json:"tilesHidden"`
	DuplicateAnchors int `json:"duplicateAnchors"`
}

// SlotCount is the number of drawn tiles of one slot.
type SlotCount struct {
	Slot  int                `json:"slot"`
	Type  pattern.TileTypeID `json:"type"`
	Count int                `json:"count"`
	Cut   int                `json:"cut"`
}

// Result is the output of [Compute].
type Result struct {
	Pattern    string               `json:"pattern"`
	Proportion int                  `json:"proportion"`
	Seed       geometry.Point       `json:"seed"`
	GroupSize  geometry.Point       `json:"groupSize"`
	TileTypes  []pattern.TileTypeID `json:"tileTypes"`
	Tiles      []TileGroup          `json:"tiles"`
	Counts     *TileCounts          `json:"tileCounts"`
	Area       AreaReport           `json:"area"`
	Stats      Stats                `json:"stats"`
}

// SlotCounts returns drawn and cut tile counts per slot, in slot order.
func (r *Result) SlotCounts() []SlotCount {
	out := make([]SlotCount, len(r.TileTypes))
	for i, t := range r.TileTypes {
		out[i] = SlotCount{Slot: i, Type: t}
	}
	for _, g := range r.Tiles {
		for _, t := range g.Tiles {
			if !t.Draw || t.Slot >= len(out) {
				continue
			}
			out[t.Slot].Count++
			if t.Cut {
				out[t.Slot].Cut++
			}
		}
	}
	return out
}

// TypeCounts returns drawn tile counts per tile type.
func (r *Result) TypeCounts() map[pattern.TileTypeID]int {
	out := make(map[pattern.TileTypeID]int)
	for _, s := range r.SlotCounts() {
		out[s.Type] += s.Count
	}
	return out
}

// Tile returns the drawn tile with the given ID.
func (r *Result) Tile(id int) (TileInstance, bool) {
	for _, g := range r.Tiles {
		for _, t := range g.Tiles {
			if t.ID == id && t.Draw {
				return t, true
			}
		}
	}
	return TileInstance{}, false
}

// resultJSON keeps Result's JSON shape while allowing a nil Counts.
type resultJSON Result

// MarshalJSON encodes r, writing an empty count list when Counts is nil.
func (r *Result) MarshalJSON() ([]byte, error) {
	v := resultJSON(*r)
	if v.Counts == nil {
		v.Counts = newTileCounts()
	}
	return json.Marshal(v)
}
