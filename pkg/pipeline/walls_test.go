package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/errors"
)

func TestWallsKeepsLastGoodLayout(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	r := newRunner(t, nil)
	r.Logger = log.NewWithOptions(&logs, log.Options{})
	walls := NewWalls(r)

	good, err := walls.Update(ctx, gridOptions())
	require.NoError(t, err)
	require.NotNil(t, good)

	bad := gridOptions()
	bad.Pattern = "Herringbone"
	prev, err := walls.Update(ctx, bad)
	assert.True(t, errors.Is(err, errors.ErrCodePatternNotFound))
	assert.Same(t, good, prev)
	assert.Contains(t, logs.String(), "keeping previous layout")

	bad = gridOptions()
	bad.Proportion = 9
	prev, err = walls.Update(ctx, bad)
	assert.True(t, errors.Is(err, errors.ErrCodeProportionNotFound))
	assert.Same(t, good, prev)

	got, err := walls.Get(ctx, "east")
	require.NoError(t, err)
	assert.Same(t, good, got)
	assert.Equal(t, []string{"east"}, walls.Names())
}

func TestWallsFirstUpdateFails(t *testing.T) {
	walls := NewWalls(newRunner(t, nil))
	opts := gridOptions()
	opts.Wall = "north"
	opts.Pattern = "Herringbone"

	prev, err := walls.Update(context.Background(), opts)
	require.Error(t, err)
	assert.Nil(t, prev)

	_, err = walls.Get(context.Background(), "north")
	assert.True(t, errors.Is(err, errors.ErrCodeWallNotFound))
}

func TestWallsReloadFromCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()

	opts := gridOptions()
	opts.Wall = "floor"
	stored, err := NewWalls(newRunner(t, c)).Update(ctx, opts)
	require.NoError(t, err)

	// A fresh store over the same cache serves the persisted layout.
	got, err := NewWalls(newRunner(t, c)).Get(ctx, "floor")
	require.NoError(t, err)
	assert.True(t, got.CacheHit)
	assert.Equal(t, "floor", got.Wall)
	assert.Equal(t, stored.Scale, got.Scale)
	assert.Equal(t, stored.Layout.Stats, got.Layout.Stats)
}

func TestWallsGetInvalidName(t *testing.T) {
	_, err := NewWalls(newRunner(t, nil)).Get(context.Background(), "../etc")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
