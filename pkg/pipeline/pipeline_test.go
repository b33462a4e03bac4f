package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/surface"
)

func square(size float64) surface.Surface {
	return surface.Surface{Outer: geometry.Polygon{{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size}}}
}

func newRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	cat, err := LoadCatalog(context.Background(), filepath.Join("testdata", "patterns.json"))
	require.NoError(t, err)
	return NewRunner(cat, c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func gridOptions() Options {
	return Options{
		Pattern: "Square Grid Pattern",
		Surface: square(500),
		Scale:   1,
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Pattern: "Running Bond", Surface: square(2400), Placement: "center"}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultWall, opts.Wall)
	assert.Equal(t, "Center", opts.Placement)
	assert.Equal(t, float64(DefaultTargetHeight), opts.TargetHeight)
	assert.InDelta(t, 0.25, opts.Scale, 1e-12)
	assert.NotNil(t, opts.Logger)

	// Idempotent
	opts.Scale = 2
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, 2.0, opts.Scale)
}

func TestScaleFromAllSurfaces(t *testing.T) {
	opts := Options{
		Pattern:       "Running Bond",
		Surface:       square(1000),
		ScaleSurfaces: []surface.Surface{square(1000), square(3000)},
	}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.InDelta(t, 0.2, opts.Scale, 1e-12)
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no pattern", Options{Surface: square(10)}, errors.ErrCodeMissingInput},
		{"no surface", Options{Pattern: "p"}, errors.ErrCodeMissingInput},
		{"bad wall", Options{Wall: "East Wall", Pattern: "p", Surface: square(10)}, errors.ErrCodeInvalidInput},
		{"bad placement", Options{Pattern: "p", Surface: square(10), Placement: "middle"}, errors.ErrCodeInvalidPlacement},
		{"negative grout", Options{Pattern: "p", Surface: square(10), GroutWidth: -1}, errors.ErrCodeInvalidInput},
		{"negative proportion", Options{Pattern: "p", Surface: square(10), Proportion: -1}, errors.ErrCodeInvalidInput},
		{"negative scale", Options{Pattern: "p", Surface: square(10), Scale: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestRequestConvertsMillimetres(t *testing.T) {
	opts := gridOptions()
	opts.Scale = 0.5
	opts.GroutWidth = 2
	opts.Offset = geometry.Pt(10, 20)
	require.NoError(t, opts.ValidateAndSetDefaults())

	req := Request(nil, opts, 40)
	assert.Equal(t, geometry.Pt(250, 250), req.Surface.Outer[2])
	assert.Equal(t, geometry.Pt(5, 10), req.Offset)
	assert.Equal(t, 40.0, req.Params.UnitLength)
	assert.Equal(t, 2.0, req.Params.GroutWidth)
	assert.Equal(t, 0.5, req.Params.Scale)
	assert.Equal(t, layout.TopLeft, req.Placement)
}

func TestRunnerLayout(t *testing.T) {
	r := newRunner(t, nil)
	res, err := r.Layout(context.Background(), gridOptions())
	require.NoError(t, err)

	assert.Equal(t, "east", res.Wall)
	assert.NotEmpty(t, res.Key)
	assert.Equal(t, 100, res.Layout.Stats.TilesDrawn)
	assert.Equal(t, 0, res.Layout.Stats.TilesCut)
	assert.InDelta(t, 0.25, res.Layout.Area.EffectiveSurfaceArea, 1e-9)
}

func TestRunnerCache(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t, cache.NewMemoryCache())

	first, hit, err := r.LayoutWithCacheInfo(ctx, gridOptions())
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := r.LayoutWithCacheInfo(ctx, gridOptions())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Layout.Stats, second.Layout.Stats)
	assert.Equal(t, first.Layout.Counts.Total(), second.Layout.Counts.Total())

	refresh := gridOptions()
	refresh.Refresh = true
	_, hit, err = r.LayoutWithCacheInfo(ctx, refresh)
	require.NoError(t, err)
	assert.False(t, hit)

	other := gridOptions()
	other.GroutWidth = 2
	third, hit, err := r.LayoutWithCacheInfo(ctx, other)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotEqual(t, first.Key, third.Key)
}

func TestRunnerUnitLength(t *testing.T) {
	r := newRunner(t, nil)
	assert.Equal(t, 50.0, r.unitLength(Options{}))
	assert.Equal(t, 80.0, r.unitLength(Options{UnitLength: 80}))

	bare := NewRunner(nil, nil, nil, nil)
	assert.Equal(t, DefaultUnitLength, bare.unitLength(Options{}))
}

func TestRunnerNotFound(t *testing.T) {
	r := newRunner(t, nil)
	ctx := context.Background()

	opts := gridOptions()
	opts.Pattern = "Herringbone"
	_, err := r.Layout(ctx, opts)
	assert.True(t, errors.Is(err, errors.ErrCodePatternNotFound))

	opts = gridOptions()
	opts.Proportion = 5
	_, err = r.Layout(ctx, opts)
	assert.True(t, errors.Is(err, errors.ErrCodeProportionNotFound))
}

func TestRunnerTraceDOT(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t, cache.NewMemoryCache())
	opts := gridOptions()
	opts.Surface = square(150)

	dot, hit, err := r.TraceWithCacheInfo(ctx, opts, FormatDOT)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.True(t, strings.HasPrefix(string(dot), "digraph"))

	again, hit, err := r.TraceWithCacheInfo(ctx, opts, FormatDOT)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, dot, again)

	_, err = r.Trace(ctx, opts, "png")
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

func TestLoadCatalogMissing(t *testing.T) {
	_, err := LoadCatalog(context.Background(), filepath.Join(t.TempDir(), "none.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
