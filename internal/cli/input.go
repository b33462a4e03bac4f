package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/config"
	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/pipeline"
	"github.com/matzehuels/tilelay/pkg/surface"
)

// layoutInput collects the flags shared by commands that compute a layout.
type layoutInput struct {
	project string
	wall    string
	catalog string
	noCache bool

	pattern    string
	proportion int
	placement  string
	unit       float64
	grout      float64
	scale      float64
	offset     []float64
	width      float64
	height     float64
	holes      []string
}

func (in *layoutInput) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&in.project, "project", "", "project file (default: ./"+config.DefaultFile+" when present)")
	f.StringVar(&in.wall, "wall", pipeline.DefaultWall, "wall of the project to lay out")
	f.StringVar(&in.catalog, "catalog", "", "pattern catalog (JSON or TOML), overrides the project")
	f.BoolVar(&in.noCache, "no-cache", false, "disable caching")

	f.StringVarP(&in.pattern, "pattern", "p", "", "pattern name")
	f.IntVar(&in.proportion, "proportion", 0, "tile proportion index")
	f.StringVar(&in.placement, "placement", "", "seed placement, e.g. TopLeft, Center, BottomRight")
	f.Float64Var(&in.unit, "unit", 0, "unit tile length in mm (default: catalog minimum tile length)")
	f.Float64Var(&in.grout, "grout", 0, "grout width in mm")
	f.Float64Var(&in.scale, "scale", 0, "pixels per mm (default: derived from the tallest surface)")
	f.Float64SliceVar(&in.offset, "offset", nil, "seed offset in mm as x,y")
	f.Float64Var(&in.width, "width", 0, "surface width in mm")
	f.Float64Var(&in.height, "height", 0, "surface height in mm")
	f.StringArrayVar(&in.holes, "hole", nil, "rectangular opening in mm as x,y,w,h (repeatable)")

	_ = cmd.RegisterFlagCompletionFunc("wall", completeWalls)
	_ = cmd.RegisterFlagCompletionFunc("placement", cobra.FixedCompletions(placementNames(), cobra.ShellCompDirectiveNoFileComp))
}

// resolve builds pipeline options and the catalog and cache settings from
// the project file and flags. Flags that were set explicitly win over the
// project.
func (in *layoutInput) resolve(cmd *cobra.Command) (pipeline.Options, string, cache.Config, error) {
	var (
		opts     pipeline.Options
		catalog  = in.catalog
		cacheCfg cache.Config
	)

	proj, err := in.loadProject()
	if err != nil {
		return opts, "", cacheCfg, err
	}
	if proj != nil && in.width == 0 && in.height == 0 {
		w, err := proj.Wall(in.wall)
		if err != nil {
			return opts, "", cacheCfg, err
		}
		opts = wallOptions(proj, in.wall, w)
		if catalog == "" {
			catalog = proj.CatalogPath()
		}
		cacheCfg = proj.CacheConfig()
	} else {
		s, err := in.surface()
		if err != nil {
			return opts, "", cacheCfg, err
		}
		opts = pipeline.Options{Wall: in.wall, Surface: s}
	}

	flags := cmd.Flags()
	if flags.Changed("pattern") || opts.Pattern == "" {
		opts.Pattern = in.pattern
	}
	if flags.Changed("proportion") {
		opts.Proportion = in.proportion
	}
	if flags.Changed("placement") {
		opts.Placement = in.placement
	}
	if flags.Changed("unit") {
		opts.UnitLength = in.unit
	}
	if flags.Changed("grout") {
		opts.GroutWidth = in.grout
	}
	if flags.Changed("scale") {
		opts.Scale = in.scale
	}
	if flags.Changed("offset") {
		if len(in.offset) != 2 {
			return opts, "", cacheCfg, errors.New(errors.ErrCodeInvalidInput, "--offset needs x,y")
		}
		opts.Offset = geometry.Pt(in.offset[0], in.offset[1])
	}

	if catalog == "" {
		return opts, "", cacheCfg, errors.New(errors.ErrCodeMissingInput, "no catalog: pass --catalog or use a project file")
	}
	return opts, catalog, cacheCfg, nil
}

// loadProject loads the explicit project file, or ./tilelay.toml when it
// exists. It returns nil without a project.
func (in *layoutInput) loadProject() (*config.Project, error) {
	path := in.project
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			return nil, nil
		}
		path = config.DefaultFile
	}
	return config.Load(path)
}

// surface builds a rectangular surface from --width, --height and --hole.
func (in *layoutInput) surface() (surface.Surface, error) {
	if !(in.width > 0) || !(in.height > 0) {
		return surface.Surface{}, errors.New(errors.ErrCodeMissingInput, "no surface: pass --width and --height or use a project file")
	}
	s := surface.Surface{Outer: rect(0, 0, in.width, in.height)}
	for _, h := range in.holes {
		hole, err := parseHole(h)
		if err != nil {
			return surface.Surface{}, err
		}
		s.Holes = append(s.Holes, hole)
	}
	return s, nil
}

// wallOptions converts a project wall into pipeline options. The scale is
// derived over all walls so every wall is drawn at the same size.
func wallOptions(p *config.Project, name string, w config.Wall) pipeline.Options {
	all := make([]surface.Surface, 0, len(p.Walls))
	for _, n := range p.WallNames() {
		all = append(all, p.Walls[n].Surface)
	}
	return pipeline.Options{
		Wall:          name,
		Pattern:       w.Pattern,
		Proportion:    w.Proportion,
		Placement:     w.Placement,
		Offset:        w.Offset,
		UnitLength:    p.UnitLength,
		GroutWidth:    p.Grout(w),
		Surface:       w.Surface,
		TargetHeight:  p.TargetHeight,
		ScaleSurfaces: all,
	}
}

func placementNames() []string {
	var names []string
	for _, p := range layout.Placements() {
		names = append(names, string(p))
	}
	return names
}

func parseHole(s string) (geometry.Polygon, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "hole %q: want x,y,w,h", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "hole %q", s)
		}
		v[i] = f
	}
	if !(v[2] > 0) || !(v[3] > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "hole %q: width and height must be positive", s)
	}
	return rect(v[0], v[1], v[2], v[3]), nil
}

func rect(x, y, w, h float64) geometry.Polygon {
	return geometry.Polygon{geometry.Pt(x, y), geometry.Pt(x+w, y), geometry.Pt(x+w, y+h), geometry.Pt(x, y+h)}
}

// describeSurface renders the surface size for summaries.
func describeSurface(s surface.Surface) string {
	b := s.Bounds()
	desc := fmt.Sprintf("%.0f × %.0f mm", b.Width(), b.Height())
	if n := len(s.Holes); n > 0 {
		desc += fmt.Sprintf(", %d hole(s)", n)
	}
	return desc
}
