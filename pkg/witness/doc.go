// Package witness provides the in-memory model of a verification witness.
//
// # Overview
//
// A witness is a directed graph annotating a path through a program: which
// node starts the path, which node reaches the violated property, which
// invariants hold at a node, and what happened on each edge (thread id,
// source line, branch condition, function entry or exit). Verification and
// validation tools exchange witnesses as GraphML; see package
// [github.com/matzehuels/witness/pkg/io] for reading and writing that format.
//
// # Arena Storage
//
// [Graph] owns all nodes in a single store and hands out integer indices.
// Indices are assigned in creation order starting at 0 and never change.
// Edges refer to their endpoints by index only, so the graph holds no
// pointer cycles:
//
//	g := witness.New()
//	a := g.AddNode()
//	b := g.AddNode()
//	g.Node(a).Name = "A1"
//	g.Node(b).Name = "A2"
//	g.AddEdge(a, b, witness.EdgeAnnotation("A1", "A2",
//	    witness.Data{Key: witness.KeyThreadID, Value: "0"}))
//
// # Edge Annotations
//
// Each edge carries an [Annotation], the attributed markup fragment the
// producer attached to it. The graph never interprets it beyond read
// accessors; the exporter replays it unchanged. [Graph.AddEdge] stores the
// same annotation in the source's outgoing map and the target's incoming
// map, so both views always agree.
//
// # Concurrency
//
// A Graph is built and consumed by a single owner within one import or
// export call. It is not safe for concurrent mutation.
package witness
