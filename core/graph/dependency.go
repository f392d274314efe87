// Package graph - Definition dependency graph
//
// Definitions in a batch may refer to each other in any textual order. The
// graph orders them so every definition comes after the ones it uses,
// keeping insertion order wherever dependencies allow it.
package graph

import (
	"fmt"
	"strings"

	"units-system/core/determinism"
)

// DependencyGraph is a directed graph of named definitions
type DependencyGraph struct {
	nodes *determinism.OrderedMap[string, struct{}]
	edges map[string][]string

	topoOrder []string
	topoValid bool
}

// NewDependencyGraph creates an empty graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: determinism.NewOrderedMap[string, struct{}](),
		edges: make(map[string][]string),
	}
}

// AddNode adds a node. Adding an existing node keeps its original position.
func (g *DependencyGraph) AddNode(name string) {
	if !g.nodes.Has(name) {
		g.nodes.Set(name, struct{}{})
		g.topoValid = false
	}
}

// AddEdge adds a dependency edge (from depends on to). Duplicate edges are
// ignored.
func (g *DependencyGraph) AddEdge(from, to string) {
	for _, dep := range g.edges[from] {
		if dep == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
	g.topoValid = false
}

// Has reports whether name is a node
func (g *DependencyGraph) Has(name string) bool {
	return g.nodes.Has(name)
}

// Nodes returns the nodes in insertion order
func (g *DependencyGraph) Nodes() []string {
	return g.nodes.Keys()
}

// Len returns the number of nodes
func (g *DependencyGraph) Len() int {
	return g.nodes.Len()
}

// TopologicalSort returns the nodes with every dependency before its
// dependents. Edges to names that are not nodes are ignored.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if g.topoValid {
		return g.topoOrder, nil
	}

	visited := make(map[string]bool)
	onPath := make(map[string]bool)
	var path []string
	order := make([]string, 0, g.nodes.Len())

	var visit func(n string) error
	visit = func(n string) error {
		if onPath[n] {
			return newCycleError(path, n)
		}
		if visited[n] {
			return nil
		}
		onPath[n] = true
		path = append(path, n)
		for _, dep := range g.edges[n] {
			if !g.nodes.Has(dep) {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		onPath[n] = false
		visited[n] = true
		order = append(order, n)
		return nil
	}

	for _, n := range g.nodes.Keys() {
		if err := visit(n); err != nil {
			return nil, err
		}
	}

	g.topoOrder = order
	g.topoValid = true
	return order, nil
}

// CycleError indicates a dependency cycle. Path starts and ends with the
// same node.
type CycleError struct {
	Path []string
}

func newCycleError(path []string, n string) *CycleError {
	start := 0
	for i, p := range path {
		if p == n {
			start = i
			break
		}
	}
	cycle := append([]string{}, path[start:]...)
	return &CycleError{Path: append(cycle, n)}
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}
