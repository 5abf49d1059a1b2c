// Package nodelink renders witness graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// witness nodes appear as boxes connected by arrows along the witness path.
// It is meant for inspecting witnesses by eye; the GraphML file stays the
// artifact exchanged between tools.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Entry: entry, Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Entry: index of the node drawn with a double border
//   - Detailed: include invariants on nodes and startline, control,
//     assumption, function and thread data on edges
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
