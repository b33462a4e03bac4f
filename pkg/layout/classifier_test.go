package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilelay/pkg/geometry"
)

func TestSignatureIgnoresStartAndOrientation(t *testing.T) {
	a := []geometry.Polygon{{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 0, Y: 10}}}
	b := []geometry.Polygon{{{X: 20, Y: 10}, {X: 20, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 10}}}
	assert.Equal(t, signature(a), signature(b))

	rotated := []geometry.Polygon{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 20}, {X: 0, Y: 20}}}
	assert.NotEqual(t, signature(a), signature(rotated))
}

func TestSignatureMultiRing(t *testing.T) {
	a := []geometry.Polygon{
		{{X: 5, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 1}, {X: 5, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	b := []geometry.Polygon{a[1], a[0]}
	assert.Equal(t, signature(a), signature(b))
	assert.Equal(t, "0.00,0.00,0.00,1.00,1.00,0.00,1.00,1.00;5.00,0.00,5.00,1.00,6.00,0.00,6.00,1.00", signature(a))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2349))
	assert.Equal(t, 0.0, round2(-0.001))
}

func TestTileCountsJSON(t *testing.T) {
	c := newTileCounts()
	c.add("b", 1, nil, "10,10", false, 0)
	c.add("a", 2, nil, "5,5", true, 1)
	c.add("b", 3, nil, "10,10", false, 0)

	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 1, c.Cut())

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var back TileCounts
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, 2, back.Len())
	assert.Equal(t, "b", back.Entries()[0].Signature)
	e, ok := back.Get("b")
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, e.IDs)
	assert.Equal(t, 2, e.Count)
}
