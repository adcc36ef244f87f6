// Package graph derives the directed dependency graph implied by a
// lockfile's flat package list.
//
// Each package declares its dependencies by possibly partial references
// (name, optional version, optional source). Building the graph resolves
// every reference against the full package list: exactly one candidate
// yields an edge, zero or several fail with a structured error carrying
// the offending package and reference. Resolution is deliberately a second
// phase after parsing, so a document whose references cannot be resolved
// can still be listed and translated.
//
// Nodes keep a stable index assigned in package-list order; adjacency is
// stored as integer-indexed edge lists, which supports cyclic graphs
// without reference cycles. Cycles are legal: dev and build dependencies
// can legitimately round-trip.
package graph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/locktower/pkg/errors"
	"github.com/matzehuels/locktower/pkg/lockfile"
)

// NodeIndex identifies a node in the graph. Indices are assigned in
// package-list order and are stable for the lifetime of the graph, so
// callers can cache them across repeated renders.
type NodeIndex int

// Direction selects which way edges are walked.
type Direction int

const (
	// Outgoing walks from a package to the packages it depends on.
	Outgoing Direction = iota
	// Incoming walks from a package to the packages that depend on it.
	Incoming
)

// Graph is the directed dependency graph of one lockfile. It is immutable
// after Build and safe for concurrent reads.
type Graph struct {
	nodes    []lockfile.Identity
	indices  map[lockfile.Identity]NodeIndex
	outgoing [][]NodeIndex // per node, in dependency-declaration order
	incoming [][]NodeIndex // per node, in package-list order
}

// UnresolvedDependencyError reports a reference that matches no package in
// the document.
type UnresolvedDependencyError struct {
	From      lockfile.Identity
	Reference lockfile.Dependency
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("package %s depends on %q, which is not in the package list",
		e.From, e.Reference)
}

// AmbiguousDependencyError reports a reference that matches more than one
// package. This can only happen for older-format documents whose
// references omit version or source while the document contains several
// matching packages.
type AmbiguousDependencyError struct {
	From       lockfile.Identity
	Reference  lockfile.Dependency
	Candidates []lockfile.Identity
}

func (e *AmbiguousDependencyError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	return fmt.Sprintf("package %s depends on %q, which matches multiple packages: %s",
		e.From, e.Reference, strings.Join(names, ", "))
}

// Build constructs the dependency graph for lf. All packages become nodes
// first; every dependency reference is then resolved against the complete
// list, so ambiguity is detected over the full candidate set.
func Build(lf *lockfile.Lockfile) (*Graph, error) {
	n := len(lf.Packages)
	g := &Graph{
		nodes:    make([]lockfile.Identity, n),
		indices:  make(map[lockfile.Identity]NodeIndex, n),
		outgoing: make([][]NodeIndex, n),
		incoming: make([][]NodeIndex, n),
	}

	byName := make(map[string][]NodeIndex, n)
	for i := range lf.Packages {
		id := lf.Packages[i].Identity()
		g.nodes[i] = id
		g.indices[id] = NodeIndex(i)
		byName[id.Name] = append(byName[id.Name], NodeIndex(i))
	}

	for i := range lf.Packages {
		pkg := &lf.Packages[i]
		for _, dep := range pkg.Dependencies {
			var candidates []NodeIndex
			for _, idx := range byName[dep.Name] {
				if dep.Matches(&lf.Packages[idx]) {
					candidates = append(candidates, idx)
				}
			}

			switch len(candidates) {
			case 1:
				target := candidates[0]
				g.outgoing[i] = append(g.outgoing[i], target)
				g.incoming[target] = append(g.incoming[target], NodeIndex(i))
			case 0:
				cause := &UnresolvedDependencyError{From: g.nodes[i], Reference: dep}
				return nil, errors.Wrap(errors.ErrCodeUnresolvedDependency, cause,
					"dependency graph build failed")
			default:
				cause := &AmbiguousDependencyError{From: g.nodes[i], Reference: dep}
				for _, idx := range candidates {
					cause.Candidates = append(cause.Candidates, g.nodes[idx])
				}
				return nil, errors.Wrap(errors.ErrCodeAmbiguousDependency, cause,
					"dependency graph build failed")
			}
		}
	}

	return g, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Identity returns the package identity at index n.
func (g *Graph) Identity(n NodeIndex) lockfile.Identity { return g.nodes[n] }

// Lookup returns the node index for a package identity.
func (g *Graph) Lookup(id lockfile.Identity) (NodeIndex, bool) {
	idx, ok := g.indices[id]
	return idx, ok
}

// Neighbors returns the immediate neighbors of n in the given direction.
// Outgoing neighbors appear in the order their references were declared in
// the source package; incoming neighbors appear in package-list order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(n NodeIndex, direction Direction) []NodeIndex {
	if direction == Outgoing {
		return g.outgoing[n]
	}
	return g.incoming[n]
}
