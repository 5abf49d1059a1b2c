package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/witness/pkg/errors"
	"github.com/matzehuels/witness/pkg/witness"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Entry is the index of the node drawn as the path start. Negative
	// values leave every node undecorated.
	Entry int
	// Detailed adds invariants to node labels and edge data to edge labels.
	// When false, only node names are shown.
	Detailed bool
}

// edgeLabelKeys are the edge data entries shown in detailed mode, in order.
var edgeLabelKeys = []string{
	witness.KeyStartLine,
	witness.KeyControl,
	witness.KeyAssumption,
	witness.KeyEnterFunction,
	witness.KeyReturnFrom,
	witness.KeyThreadID,
}

// ToDOT converts a witness graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Violation nodes are filled red, the sink node is dashed grey, and the
// entry node (see [Options.Entry]) gets a double border. Nodes are emitted in
// index order and edges in source, then target, index order.
func ToDOT(g *witness.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Witness {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(n, n.Index() == opts.Entry, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes() {
		for _, t := range n.Successors() {
			a, _ := n.Out(t)
			label := ""
			if opts.Detailed {
				label = fmtEdgeLabel(a)
			}
			if label == "" {
				fmt.Fprintf(&buf, "  %q -> %q;\n", n.Name, g.Node(t).Name)
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", n.Name, g.Node(t).Name, label)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *witness.Node, detailed bool) string {
	if !detailed || !n.HasInvariant {
		return n.Name
	}
	label := n.Name + "\n" + n.Invariant
	if n.InvariantScope != "" {
		label += "\n@" + n.InvariantScope
	}
	return label
}

func fmtAttrs(n *witness.Node, entry bool, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.IsViolation:
		attrs = append(attrs, "fillcolor=\"#f4a6a6\"", "color=\"#b22222\"")
	case n.Name == witness.SinkName:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	if entry {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func fmtEdgeLabel(a *witness.Annotation) string {
	var parts []string
	for _, k := range edgeLabelKeys {
		if v, ok := a.Value(k); ok && v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the diagram scales from a
// zero origin with explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
