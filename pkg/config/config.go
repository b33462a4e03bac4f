// Package config loads tilelay project files.
//
// A project file is TOML and describes the pattern catalog, the walls to
// tile and where computed layouts are cached:
//
//	catalog = "patterns.json"
//	target_height = 600
//	unit_length = 50
//	grout_width = 2
//
//	[cache]
//	backend = "file"
//	dir = ".tilelay/cache"
//	prefix = "bathroom:"
//
//	[walls.east]
//	pattern = "Square Grid Pattern"
//	proportion = 0
//	placement = "TopLeft"
//	offset = [0, 0]
//	surface.outer = [[0, 0], [3000, 0], [3000, 2400], [0, 2400]]
//	surface.holes = [[[800, 0], [1700, 0], [1700, 2000], [800, 2000]]]
//
// Surface coordinates and offsets are millimetres. The pixel scale is shared
// by all walls and derived from the tallest one, see [Project.Scale].
package config

import (
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/surface"
)

// DefaultFile is the project file name looked up by the CLI.
const DefaultFile = "tilelay.toml"

// StandardWalls are the walls of a room in display order. Other wall names
// are allowed and sort after these.
var StandardWalls = []string{"east", "south", "west", "north", "floor"}

// Project is a decoded project file.
type Project struct {
	Catalog      string          `toml:"catalog"`
	TargetHeight float64         `toml:"target_height"`
	UnitLength   float64         `toml:"unit_length"`
	GroutWidth   float64         `toml:"grout_width"`
	Cache        cache.Config    `toml:"cache"`
	Walls        map[string]Wall `toml:"walls"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// Wall is one surface of the project.
type Wall struct {
	Pattern    string          `toml:"pattern"`
	Proportion int             `toml:"proportion"`
	Placement  string          `toml:"placement"`
	Offset     geometry.Point  `toml:"offset"`
	GroutWidth *float64        `toml:"grout_width"` // overrides the project value
	Surface    surface.Surface `toml:"surface"`
}

// Load reads and validates the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "project file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a project from TOML. Relative paths in the project are
// resolved against dir.
func Parse(data []byte, dir string) (*Project, error) {
	var p Project
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode project")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undec[0].String())
	}
	p.dir = dir
	p.setDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Project) setDefaults() {
	if p.TargetHeight == 0 {
		p.TargetHeight = surface.DefaultTargetHeight
	}
	for name, w := range p.Walls {
		if w.Placement == "" {
			w.Placement = string(layout.TopLeft)
			p.Walls[name] = w
		}
	}
}

// Validate checks the project for errors that would surface later as
// failed layouts.
func (p *Project) Validate() error {
	if p.Catalog == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "catalog path is required")
	}
	if err := errors.ValidatePath(p.Catalog); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "catalog")
	}
	if p.Cache.Dir != "" {
		if err := errors.ValidatePath(p.Cache.Dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache dir")
		}
	}
	if !(p.TargetHeight > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "target_height must be positive, got %v", p.TargetHeight)
	}
	if p.UnitLength < 0 || p.GroutWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unit_length and grout_width must not be negative")
	}
	if len(p.Walls) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no walls configured")
	}
	for _, name := range p.WallNames() {
		if err := p.Walls[name].validate(name); err != nil {
			return err
		}
	}
	return nil
}

func (w Wall) validate(name string) error {
	if err := errors.ValidateWallName(name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "wall %q", name)
	}
	if err := errors.ValidatePatternName(w.Pattern); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "wall %s", name)
	}
	if w.Proportion < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "wall %s: proportion must not be negative", name)
	}
	if _, err := layout.ParsePlacement(w.Placement); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "wall %s", name)
	}
	if w.GroutWidth != nil && *w.GroutWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "wall %s: grout_width must not be negative", name)
	}
	if !w.Offset.IsFinite() {
		return errors.New(errors.ErrCodeInvalidConfig, "wall %s: offset is not finite", name)
	}
	if err := w.Surface.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "wall %s", name)
	}
	return nil
}

// WallNames returns the configured walls, standard walls first.
func (p *Project) WallNames() []string {
	names := make([]string, 0, len(p.Walls))
	for name := range p.Walls {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := standardIndex(names[i]), standardIndex(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}

func standardIndex(name string) int {
	if i := slices.Index(StandardWalls, name); i >= 0 {
		return i
	}
	return len(StandardWalls)
}

// Wall returns the named wall.
func (p *Project) Wall(name string) (Wall, error) {
	w, ok := p.Walls[name]
	if !ok {
		return Wall{}, errors.New(errors.ErrCodeWallNotFound, "wall %q is not configured", name)
	}
	return w, nil
}

// Grout returns the grout width of w, falling back to the project value.
func (p *Project) Grout(w Wall) float64 {
	if w.GroutWidth != nil {
		return *w.GroutWidth
	}
	return p.GroutWidth
}

// Scale returns the px-per-mm factor that fits the tallest wall into
// TargetHeight pixels.
func (p *Project) Scale() (float64, error) {
	surfaces := make([]surface.Surface, 0, len(p.Walls))
	for _, name := range p.WallNames() {
		surfaces = append(surfaces, p.Walls[name].Surface)
	}
	return surface.DeriveScale(p.TargetHeight, surfaces...)
}

// CatalogPath returns the catalog path resolved against the project
// directory.
func (p *Project) CatalogPath() string {
	return p.resolve(p.Catalog)
}

// CacheConfig returns the cache configuration with a relative file cache
// directory resolved against the project directory.
func (p *Project) CacheConfig() cache.Config {
	cfg := p.Cache
	if cfg.Dir != "" {
		cfg.Dir = p.resolve(cfg.Dir)
	}
	return cfg
}

func (p *Project) resolve(path string) string {
	if filepath.IsAbs(path) || p.dir == "" {
		return path
	}
	return filepath.Join(p.dir, path)
}
