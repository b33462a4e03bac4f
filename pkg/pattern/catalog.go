package pattern

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilelay/pkg/errors"
)

// DefaultScale is the pixel-per-millimetre scale used when a catalog does
// not set one.
const DefaultScale = 0.2

// DefaultMinimumTileLength is the unit length in millimetres used when a
// catalog does not set one.
const DefaultMinimumTileLength = 50

// Catalog is a set of named pattern definitions.
type Catalog struct {
	Scale             float64      `json:"scale" toml:"scale"`
	MinimumTileLength float64      `json:"minimumTileLength" toml:"minimumTileLength"`
	Patterns          []Definition `json:"patterns" toml:"patterns"`
}

// Definition is one pattern in abstract pattern units.
type Definition struct {
	Name            string       `json:"name" toml:"name"`
	TileProportion  []Proportion `json:"tileProportion" toml:"tileProportion"`
	PropIndices     [][]int      `json:"propIndices,omitempty" toml:"propIndices"`
	Anchor          *Vertex      `json:"anchor,omitempty" toml:"anchor"`
	PatternVertices Ring         `json:"patternVertices" toml:"patternVertices"`
	BoundingBox     Ring         `json:"boundingBox" toml:"boundingBox"`
	Connection      Ring         `json:"connection" toml:"connection"`
	TileVertices    []Ring       `json:"tileVertices" toml:"tileVertices"`
}

// Load decodes a JSON catalog from r and validates it.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadTOML decodes a TOML catalog from data and validates it.
func LoadTOML(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a catalog from disk. Files ending in .toml are decoded as
// TOML, everything else as JSON.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(data)
	}
	return Load(bytes.NewReader(data))
}

func (c *Catalog) init() error {
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	if c.MinimumTileLength == 0 {
		c.MinimumTileLength = DefaultMinimumTileLength
	}
	return c.Validate()
}

// Validate checks every definition in the catalog.
func (c *Catalog) Validate() error {
	if !(c.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidCatalog, "scale must be positive, got %v", c.Scale)
	}
	if !(c.MinimumTileLength > 0) {
		return errors.New(errors.ErrCodeInvalidCatalog, "minimumTileLength must be positive, got %v", c.MinimumTileLength)
	}
	seen := make(map[string]bool, len(c.Patterns))
	for i := range c.Patterns {
		d := &c.Patterns[i]
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate pattern %q", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Names returns the pattern names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.Patterns))
	for i, d := range c.Patterns {
		out[i] = d.Name
	}
	return out
}

// Lookup returns the definition with the given name.
func (c *Catalog) Lookup(name string) (*Definition, error) {
	for i := range c.Patterns {
		if c.Patterns[i].Name == name {
			return &c.Patterns[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodePatternNotFound, "pattern %q not found", name)
}

// Resolve looks up a pattern by name and selects one of its proportions.
func (c *Catalog) Resolve(name string, proportion int) (Resolved, error) {
	d, err := c.Lookup(name)
	if err != nil {
		return Resolved{}, err
	}
	return d.Resolve(proportion)
}

// Validate checks that d is structurally complete. Geometry that is present
// but degenerate is left for the engine to reject.
func (d *Definition) Validate() error {
	if err := errors.ValidatePatternName(d.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "pattern name")
	}
	switch {
	case len(d.TileProportion) == 0:
		return errors.New(errors.ErrCodeInvalidCatalog, "pattern %q: no tile proportions", d.Name)
	case len(d.BoundingBox) < 3:
		return errors.New(errors.ErrCodeInvalidCatalog, "pattern %q: boundingBox needs at least 3 vertices", d.Name)
	case len(d.PatternVertices) < 3:
		return errors.New(errors.ErrCodeInvalidCatalog, "pattern %q: patternVertices needs at least 3 vertices", d.Name)
	case len(d.Connection) == 0:
		return errors.New(errors.ErrCodeInvalidCatalog, "pattern %q: no connection vectors", d.Name)
	case len(d.TileVertices) == 0:
		return errors.New(errors.ErrCodeInvalidCatalog, "pattern %q: no tiles", d.Name)
	}
	for i, t := range d.TileVertices {
		if len(t) < 3 {
			return errors.New(errors.ErrCodeInvalidCatalog, "pattern %q: tile %d needs at least 3 vertices", d.Name, i)
		}
	}
	for i, idx := range d.PropIndices {
		if len(idx) != 0 && len(idx) != len(d.TileVertices) {
			return errors.New(errors.ErrCodeInvalidCatalog,
				"pattern %q: propIndices[%d] has %d entries for %d tiles", d.Name, i, len(idx), len(d.TileVertices))
		}
	}
	return nil
}

// Resolve selects proportion index i of d.
func (d *Definition) Resolve(i int) (Resolved, error) {
	if i < 0 || i >= len(d.TileProportion) {
		return Resolved{}, errors.New(errors.ErrCodeProportionNotFound,
			"pattern %q has no proportion %d (have %d)", d.Name, i, len(d.TileProportion))
	}
	return Resolved{
		Definition: d,
		Index:      i,
		Proportion: d.TileProportion[i],
		TileTypes:  d.TileTypes(i),
	}, nil
}

// TileTypes returns the tile type of every slot for proportion i. Slots
// without a propIndices entry use their slot position.
func (d *Definition) TileTypes(i int) []TileTypeID {
	out := make([]TileTypeID, len(d.TileVertices))
	var idx []int
	if i >= 0 && i < len(d.PropIndices) {
		idx = d.PropIndices[i]
	}
	for slot := range out {
		if slot < len(idx) {
			out[slot] = TileTypeID(idx[slot])
		} else {
			out[slot] = TileTypeID(slot)
		}
	}
	return out
}
