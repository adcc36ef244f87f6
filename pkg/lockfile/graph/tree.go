package graph

import (
	"fmt"
	"io"
	"strings"
)

// cycleMarker annotates a node already printed on the current path.
const cycleMarker = " (*)"

// Render writes an indented depth-first tree rooted at the given node.
// With Outgoing it shows what the root depends on; with Incoming, what
// depends on the root.
//
// A node reached again along the active path is printed once more with a
// trailing "(*)" and not descended into, which bounds the walk on cyclic
// graphs. Nodes reached via different paths are rendered in full each
// time: the tree shows the shape of every dependency chain rather than a
// deduplicated set. Siblings follow the adjacency order of Neighbors.
func (g *Graph) Render(w io.Writer, root NodeIndex, direction Direction) error {
	onPath := make([]bool, len(g.nodes))
	return g.renderNode(w, root, direction, 0, onPath)
}

func (g *Graph) renderNode(w io.Writer, node NodeIndex, direction Direction, depth int, onPath []bool) error {
	indent := strings.Repeat("  ", depth)
	if onPath[node] {
		_, err := fmt.Fprintf(w, "%s%s%s\n", indent, g.nodes[node], cycleMarker)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, g.nodes[node]); err != nil {
		return err
	}

	onPath[node] = true
	defer func() { onPath[node] = false }()

	for _, neighbor := range g.Neighbors(node, direction) {
		if err := g.renderNode(w, neighbor, direction, depth+1, onPath); err != nil {
			return err
		}
	}
	return nil
}
