package lattice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tilelay/pkg/geometry"
)

// Trace records a walk. The zero value is ready to use; a nil *Trace
// records nothing.
type Trace struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a visited anchor.
type Node struct {
	Seq int            `json:"seq"`
	Pos geometry.Point `json:"pos"`
	Key Key            `json:"key"`
}

// Edge is one admission test from a visited anchor to a neighbor key.
type Edge struct {
	From     int            `json:"from"`
	To       Key            `json:"to"`
	Pos      geometry.Point `json:"pos"`
	Vector   int            `json:"vector"`
	Admitted bool           `json:"admitted"`
}

func (t *Trace) node(a Anchor) {
	if t == nil {
		return
	}
	t.Nodes = append(t.Nodes, Node{Seq: a.Seq, Pos: a.Pos, Key: a.Key})
}

func (t *Trace) edge(from int, to Key, pos geometry.Point, vector int, admitted bool) {
	if t == nil {
		return
	}
	t.Edges = append(t.Edges, Edge{From: from, To: to, Pos: pos, Vector: vector, Admitted: admitted})
}

func nodeID(k Key) string { return fmt.Sprintf("k%d_%d", k.X, k.Y) }

// DOT converts the trace to Graphviz DOT. Visited anchors are solid boxes
// labelled with their visit order; rejected neighbors are dashed.
func (t *Trace) DOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph lattice {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	keys := make(map[int]Key, len(t.Nodes))
	for _, n := range t.Nodes {
		keys[n.Seq] = n.Key
		fmt.Fprintf(&buf, "  %q [label=%q];\n", nodeID(n.Key), fmt.Sprintf("#%d\n(%.2f, %.2f)", n.Seq, n.Pos.X, n.Pos.Y))
	}
	for _, e := range t.Edges {
		if e.Admitted {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\", fontcolor=grey];\n",
			nodeID(e.To), fmt.Sprintf("(%.2f, %.2f)", e.Pos.X, e.Pos.Y))
	}

	buf.WriteString("\n")
	for _, e := range t.Edges {
		attrs := fmt.Sprintf("label=\"v%d\"", e.Vector)
		if !e.Admitted {
			attrs += ", style=dashed, color=grey"
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(keys[e.From]), nodeID(e.To), attrs)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
