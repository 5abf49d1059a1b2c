package witness

import (
	"iter"
	"maps"
	"slices"
)

// Node is a vertex of a witness graph.
//
// Edges are kept in two maps: out is keyed by destination index and in by
// source index. Both are written together by [Graph.AddEdge] and hold the
// same [Annotation] value, so the forward and reverse views of an edge
// cannot diverge.
type Node struct {
	Name        string // Source-provided identifier (non-empty after import)
	IsViolation bool   // Node reaches the violated property

	// HasInvariant gates Invariant and InvariantScope.
	HasInvariant   bool
	Invariant      string
	InvariantScope string

	index int
	out   map[int]*Annotation
	in    map[int]*Annotation
}

// Index returns the node's position in its graph.
func (n *Node) Index() int { return n.index }

// Out returns the annotation of the edge to node t.
func (n *Node) Out(t int) (*Annotation, bool) {
	a, ok := n.out[t]
	return a, ok
}

// In returns the annotation of the edge from node s.
func (n *Node) In(s int) (*Annotation, bool) {
	a, ok := n.in[s]
	return a, ok
}

// Successors returns the destination indices of outgoing edges in ascending order.
func (n *Node) Successors() []int { return slices.Sorted(maps.Keys(n.out)) }

// Predecessors returns the source indices of incoming edges in ascending order.
func (n *Node) Predecessors() []int { return slices.Sorted(maps.Keys(n.in)) }

// OutDegree returns the number of outgoing edges.
func (n *Node) OutDegree() int { return len(n.out) }

// InDegree returns the number of incoming edges.
func (n *Node) InDegree() int { return len(n.in) }

// Graph is an append-only, index-addressed witness graph.
//
// Nodes live in a single store owned by the graph and are referenced
// everywhere by index. Indices start at 0, follow creation order, and are
// never reused or renumbered.
//
// The zero value is not usable - use New. Graph is not safe for concurrent use.
type Graph struct {
	nodes []*Node

	// KeyValues holds graph-level metadata (program file, hash, producer, ...).
	// It is never nil for graphs created with New.
	KeyValues map[string]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{KeyValues: make(map[string]string)}
}

// AddNode appends a new node and returns its index.
func (g *Graph) AddNode() int {
	i := len(g.nodes)
	g.nodes = append(g.nodes, &Node{
		index: i,
		out:   make(map[int]*Annotation),
		in:    make(map[int]*Annotation),
	})
	return i
}

// Node returns a mutable view of the node at index i.
// It panics if i is out of range, like a slice access.
func (g *Graph) Node(i int) *Node { return g.nodes[i] }

// Size returns the number of nodes.
func (g *Graph) Size() int { return len(g.nodes) }

// AddEdge records an edge from node from to node to, annotated with a.
// Both endpoint maps are written in the same call. An existing edge between
// the same pair is replaced on both sides.
//
// Every edge must carry an annotation: AddEdge panics if a is nil. Use
// [EdgeAnnotation] for an edge without data.
func (g *Graph) AddEdge(from, to int, a *Annotation) {
	if a == nil {
		panic("witness: AddEdge with nil annotation")
	}
	g.nodes[from].out[to] = a
	g.nodes[to].in[from] = a
}

// EdgeCount returns the number of distinct (source, target) pairs.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, nd := range g.nodes {
		n += len(nd.out)
	}
	return n
}

// Nodes iterates over the nodes in index order.
func (g *Graph) Nodes() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		for i, n := range g.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Lookup returns the index of the first node named name.
func (g *Graph) Lookup(name string) (int, bool) {
	for i, n := range g.nodes {
		if n.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Violations returns the indices of violation nodes in ascending order.
func (g *Graph) Violations() []int {
	var out []int
	for i, n := range g.nodes {
		if n.IsViolation {
			out = append(out, i)
		}
	}
	return out
}
