package lattice

import (
	"math"

	"github.com/matzehuels/tilelay/pkg/geometry"
)

// Key is an anchor position on the fixed-point grid.
type Key struct {
	X, Y int64
}

// Quantize returns the key of p at the given grid scale.
func Quantize(p geometry.Point, scale float64) Key {
	return Key{X: int64(math.Round(p.X * scale)), Y: int64(math.Round(p.Y * scale))}
}

// Anchor is one visited lattice position.
type Anchor struct {
	Seq    int            // visit order, starting at 0 for the seed
	Pos    geometry.Point // physical position
	Key    Key
	Parent int // Seq of the anchor it was reached from, -1 for the seed
}

// AdmitFunc decides whether a neighbor at pos is worth visiting.
type AdmitFunc func(pos geometry.Point) bool

// Stats summarizes a walk.
type Stats struct {
	Visited    int // anchors handed to the visit callback
	Tested     int // distinct neighbor keys run through the admission test
	Rejected   int // tested keys that were not admitted
	Duplicates int // neighbors at a different position than the anchor already holding their key
}

// driftLimit is the distance, in grid units, below which two positions with
// the same key count as the same anchor reached along different paths.
const driftLimit = 1e-6

// Walker performs breadth-first search over a pattern lattice.
type Walker struct {
	vectors []geometry.Point
	scale   float64
	admit   AdmitFunc
	trace   *Trace
}

// New creates a walker over the given connection vectors. Keys are
// quantized at scale grid units per pixel. A nil admit accepts nothing, so
// only the seed is visited.
func New(vectors []geometry.Point, scale float64, admit AdmitFunc) *Walker {
	return &Walker{vectors: vectors, scale: scale, admit: admit}
}

// SetTrace makes the walker record its progress into t.
func (w *Walker) SetTrace(t *Trace) { w.trace = t }

type queued struct {
	pos    geometry.Point
	key    Key
	parent int
}

// Walk visits the seed and every admitted anchor reachable from it, in BFS
// order, calling visit once per anchor.
func (w *Walker) Walk(seed geometry.Point, visit func(Anchor)) Stats {
	var stats Stats
	seedKey := Quantize(seed, w.scale)
	seen := map[Key]geometry.Point{seedKey: seed}
	queue := []queued{{pos: seed, key: seedKey, parent: -1}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		a := Anchor{Seq: stats.Visited, Pos: cur.pos, Key: cur.key, Parent: cur.parent}
		stats.Visited++
		w.trace.node(a)
		visit(a)

		for i, v := range w.vectors {
			next := cur.pos.Add(v)
			key := Quantize(next, w.scale)
			if prev, ok := seen[key]; ok {
				if geometry.Dist(prev, next)*w.scale > driftLimit {
					stats.Duplicates++
				}
				continue
			}
			seen[key] = next
			stats.Tested++

			ok := w.admit != nil && w.admit(next)
			w.trace.edge(a.Seq, key, next, i, ok)
			if !ok {
				stats.Rejected++
				continue
			}
			queue = append(queue, queued{pos: next, key: key, parent: a.Seq})
		}
	}
	return stats
}
