// Package lattice walks the anchors of a periodic pattern breadth-first.
//
// Starting from a seed position, a [Walker] adds every connection vector to
// each visited anchor and queues the neighbor if the caller's admission test
// accepts it. Positions are identified by a [Key] quantized to the same
// fixed-point grid as the clipping engine, so two paths that reach the same
// physical anchor through different vector sums collapse to one visit.
//
// The walk is deterministic: the queue is FIFO and connection vectors are
// tried in declared order. A key is marked seen the first time it is tested,
// whether or not it was admitted, so every anchor is tested at most once.
//
// A [Trace] records the walk for debugging and can be exported as Graphviz
// DOT with [Trace.DOT] or rendered to SVG with [RenderSVG].
package lattice
