// Package pkg holds the libraries behind the witness tool.
//
// # Overview
//
// A verification witness is a GraphML document describing either a path
// through a program to a property violation or the invariants that rule
// one out. The packages here read, model and write such documents:
//
//  1. [witness] - The graph model: indexed nodes, edge annotations, metadata
//  2. [io] - GraphML import (with key defaults) and export
//  3. [render/nodelink] - Graphviz DOT and SVG drawings of a witness
//  4. [errors] - Coded errors shared by all packages
//  5. [buildinfo] - Version information set at build time
//
// # Architecture
//
//	witness.graphml[.zst]
//	         ↓
//	    [io] ImportGraphML (walk, resolve ids, apply defaults)
//	         ↓
//	    [witness] Graph + entry index
//	         ↓
//	    [io] ExportGraphML  or  [render/nodelink] ToDOT / RenderSVG
//
// # Quick Start
//
//	g, entry, err := io.ImportGraphML("witness.graphml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d nodes, entry %s\n", g.Size(), g.Node(entry).Name)
//
//	g.KeyValues["producer"] = "my-verifier 1.0"
//	if err := io.ExportGraphML(g, "out.graphml"); err != nil {
//	    log.Fatal(err)
//	}
//
// [witness]: github.com/matzehuels/witness/pkg/witness
// [io]: github.com/matzehuels/witness/pkg/io
// [render/nodelink]: github.com/matzehuels/witness/pkg/render/nodelink
// [errors]: github.com/matzehuels/witness/pkg/errors
// [buildinfo]: github.com/matzehuels/witness/pkg/buildinfo
package pkg
