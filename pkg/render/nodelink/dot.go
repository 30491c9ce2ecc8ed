// Package nodelink renders simulation snapshots as node-link diagrams.
//
// Snapshots convert to Graphviz DOT, which renders to SVG or PNG through the
// embedded Graphviz engine. Node fill darkens with contribution count so
// heavily extended modules stand out, and detailed mode annotates every node
// with its raw attributes and scores.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/sproutsim/sprout/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes depth, x, c, and reward in node labels.
	// When false, only the module label is shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(s graph.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", fmt.Sprintf("m%d", e.From), fmt.Sprintf("m%d", e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n graph.Node) string {
	return fmt.Sprintf("m%d", n.ID)
}

func fmtLabel(n graph.Node, detailed bool) string {
	name := n.Label
	if name == "" {
		name = nodeID(n)
	}
	if !detailed {
		return name
	}
	parts := []string{
		fmt.Sprintf("depth: %d", n.Depth),
		fmt.Sprintf("x: %.3f", n.X),
		fmt.Sprintf("c: %d", n.C),
		fmt.Sprintf("reward: %.3f", n.Reward),
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fillColor(n.C)))
	if n.Parent < 0 {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// fillColor maps contribution count to a grey ramp: fresh modules render
// white, heavily contributed ones darken toward mid-grey.
func fillColor(c int) string {
	shade := 100 - c*5
	if shade < 55 {
		shade = 55
	}
	return fmt.Sprintf("grey%d", shade)
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz engine.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
