// Package io provides GraphML import and export for verification witnesses.
//
// # Overview
//
// Verification tools exchange counterexample and correctness witnesses as
// GraphML documents restricted to a fixed vocabulary. This package converts
// between that format and the [witness.Graph] model:
//
//   - Import walks a parsed element tree, resolving node identity, applying
//     per-class default attributes to edges, and finding the entry node
//   - Export emits the fixed key preamble, the graph metadata, the nodes and
//     their outgoing edges, preceded by an XML declaration
//
// Markup parsing and serialization are delegated to
// [github.com/beevik/etree].
//
// # Witness Format
//
//	<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
//	  <key attr.name="threadId" attr.type="int" for="edge" id="threadId">
//	    <default>0</default>
//	  </key>
//	  <graph edgedefault="directed">
//	    <data key="producer">CBMC</data>
//	    <node id="A1">
//	      <data key="entry">true</data>
//	    </node>
//	    <node id="A2">
//	      <data key="violation">true</data>
//	    </node>
//	    <edge source="A1" target="A2">
//	      <data key="startline">12</data>
//	    </edge>
//	  </graph>
//	</graphml>
//
// The importer accepts exactly the elements graphml, graph, key, node, edge
// and data. Any other element is a contract violation and fails the import.
//
// # Defaults
//
// A key element with a default child registers that default for its class.
// Every edge walked afterwards that lacks a data entry for the key receives
// one carrying the default; explicit values are never overwritten. The walk
// is a single pass in document order, so a key declared after an edge does
// not affect that edge. Producers declare keys ahead of the graph body.
//
// # Import
//
// Use [ImportGraphML] to read a witness file, [ReadGraphML] to read from any
// io.Reader, or [BuildGraph] for an element tree parsed elsewhere:
//
//	g, entry, err := io.ImportGraphML("witness.graphml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("entry:", g.Node(entry).Name)
//
// # Export
//
// Use [ExportGraphML] to write a file or [WriteGraphML] to write to any
// io.Writer:
//
//	err := io.ExportGraphML(g, "witness.graphml")
//
// Edges are never regenerated on export. Each edge is replayed from the
// annotation captured (and backfilled) at import time.
//
// # Entry Node Asymmetry
//
// On export the entry marker goes to the first node in index order whose
// name is not "sink". This need not be the node that carried the marker on
// import, so a round trip is not guaranteed to be identical. Consumers may
// rely on either behavior; neither is adjusted to match the other.
//
// # Compression
//
// Paths ending in ".zst" are read and written zstd-compressed by
// [ImportGraphML] and [ExportGraphML].
//
// # Errors
//
// All failures carry a code from [github.com/matzehuels/witness/pkg/errors]
// (MALFORMED_MARKUP, UNKNOWN_ELEMENT, MISSING_ENTRY_NODE,
// UNRESOLVED_ENTRY_NODE, EMPTY_NODE_NAME, WRITE_FAILED). A failed import
// returns no graph.
//
// [witness.Graph]: github.com/matzehuels/witness/pkg/witness.Graph
package io
