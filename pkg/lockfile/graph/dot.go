package graph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Detailed includes the source locator in node labels.
	// When false, labels show only "name version".
	Detailed bool
}

// ToDOT converts the dependency graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or saved and
// processed with external Graphviz tools.
func ToDOT(g *Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12];\n")
	buf.WriteString("\n")

	for i := range g.nodes {
		label := fmt.Sprintf("%s %s", g.nodes[i].Name, g.nodes[i].Version)
		if opts.Detailed && !g.nodes[i].Source.IsZero() {
			label += "\n" + g.nodes[i].Source.String()
		}
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	for from, targets := range g.outgoing {
		for _, to := range targets {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
