package layout

import (
	"encoding/json"

	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/pattern"
)

// TileCount aggregates the drawn tiles sharing one shape signature.
type TileCount struct {
	Signature   string             `json:"signature"`
	Count       int                `json:"count"`
	Polygons    []geometry.Polygon `json:"polygons"`    // shape moved to the origin
	EdgeLengths string             `json:"edgeLengths"` // mm, comma separated
	IDs         []int              `json:"ids"`
	IsCut       bool               `json:"isCut"`
	Type        pattern.TileTypeID `json:"type"`
}

// TileCounts is an ordered signature index. Entries keep the order in which
// their signature was first seen.
type TileCounts struct {
	entries []*TileCount
	index   map[string]int
}

func newTileCounts() *TileCounts {
	return &TileCounts{index: make(map[string]int)}
}

// add records one tile. The descriptive fields of an entry come from the
// first tile with that signature.
func (c *TileCounts) add(sig string, id int, polys []geometry.Polygon, edges string, cut bool, typ pattern.TileTypeID) {
	i, ok := c.index[sig]
	if !ok {
		i = len(c.entries)
		c.index[sig] = i
		c.entries = append(c.entries, &TileCount{
			Signature:   sig,
			Polygons:    polys,
			EdgeLengths: edges,
			IsCut:       cut,
			Type:        typ,
		})
	}
	e := c.entries[i]
	e.Count++
	e.IDs = append(e.IDs, id)
}

// Len returns the number of distinct signatures.
func (c *TileCounts) Len() int { return len(c.entries) }

// Entries returns the entries in first-seen order.
func (c *TileCounts) Entries() []*TileCount { return c.entries }

// Get returns the entry for sig.
func (c *TileCounts) Get(sig string) (*TileCount, bool) {
	i, ok := c.index[sig]
	if !ok {
		return nil, false
	}
	return c.entries[i], true
}

// Total returns the number of counted tiles.
func (c *TileCounts) Total() int {
	n := 0
	for _, e := range c.entries {
		n += e.Count
	}
	return n
}

// Cut returns the number of counted tiles flagged as cut.
func (c *TileCounts) Cut() int {
	n := 0
	for _, e := range c.entries {
		if e.IsCut {
			n += e.Count
		}
	}
	return n
}

// MarshalJSON encodes the entries as a list in first-seen order.
func (c *TileCounts) MarshalJSON() ([]byte, error) {
	if c == nil || c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

// UnmarshalJSON rebuilds the index from an entry list.
func (c *TileCounts) UnmarshalJSON(data []byte) error {
	var entries []*TileCount
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*c = TileCounts{entries: entries, index: make(map[string]int, len(entries))}
	for i, e := range entries {
		c.index[e.Signature] = i
	}
	return nil
}
