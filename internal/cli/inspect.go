package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/witness/pkg/io"
	"github.com/matzehuels/witness/pkg/witness"
)

// summary is what inspect reports about one witness.
type summary struct {
	Nodes      int
	Edges      int
	Entry      string
	Violations []string
	Invariants int
	HasSink    bool
	Threads    []string       // distinct threadId values, sorted
	EdgeKeys   map[string]int // data key -> number of edges carrying it
}

// summarize collects the inspect report for g.
func summarize(g *witness.Graph, entry int) summary {
	s := summary{
		Nodes:    g.Size(),
		Edges:    g.EdgeCount(),
		Entry:    g.Node(entry).Name,
		EdgeKeys: make(map[string]int),
	}
	for _, i := range g.Violations() {
		s.Violations = append(s.Violations, g.Node(i).Name)
	}
	threads := make(map[string]bool)
	for _, n := range g.Nodes() {
		if n.HasInvariant {
			s.Invariants++
		}
		if n.Name == witness.SinkName {
			s.HasSink = true
		}
		for _, t := range n.Successors() {
			a, _ := n.Out(t)
			for _, d := range a.Data() {
				s.EdgeKeys[d.Key]++
				if d.Key == witness.KeyThreadID {
					threads[d.Value] = true
				}
			}
		}
	}
	s.Threads = slices.Sorted(maps.Keys(threads))
	return s
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "inspect <witness.graphml>",
		Short: "Import a witness and print a summary",
		Long: `Import a witness and print a summary.

The witness is read with the same rules every other command uses: unknown
elements, a missing entry node or an empty node id fail the import. Files
ending in .zst are decompressed first.

With --node the report is followed by the edges entering and leaving that
node, with their data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], node)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "also list the edges of this node id")

	return cmd
}

// fmtEdge renders one annotation as "source -> target key=value ...".
func fmtEdge(a *witness.Annotation) string {
	parts := []string{a.Source() + " " + iconArrow + " " + a.Target()}
	for _, d := range a.Data() {
		parts = append(parts, d.Key+"="+d.Value)
	}
	return strings.Join(parts, " ")
}

// printNode lists the incoming and outgoing edges of the node named name.
func (c *CLI) printNode(g *witness.Graph, name string) error {
	i, ok := g.Lookup(name)
	if !ok {
		return fmt.Errorf("node %q not found", name)
	}
	n := g.Node(i)

	fmt.Fprintln(c.out, StyleTitle.Render(fmt.Sprintf("node %s (#%d)", n.Name, n.Index())))
	printKeyValue(c.out, "in", fmt.Sprint(n.InDegree()))
	for _, s := range n.Predecessors() {
		a, _ := n.In(s)
		printDetail(c.out, "%s", fmtEdge(a))
	}
	printKeyValue(c.out, "out", fmt.Sprint(n.OutDegree()))
	for _, t := range n.Successors() {
		a, _ := n.Out(t)
		printDetail(c.out, "%s", fmtEdge(a))
	}
	return nil
}

func (c *CLI) runInspect(cmd *cobra.Command, path, node string) error {
	logger := loggerFromContext(cmd.Context())
	logger.Debug("Importing witness", "path", path)

	g, entry, err := pkgio.ImportGraphML(path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	s := summarize(g, entry)

	w := c.out
	fmt.Fprintln(w, StyleTitle.Render(path))
	printStats(w, s.Nodes, s.Edges)
	printKeyValue(w, "entry", s.Entry)

	violations := "none"
	if len(s.Violations) > 0 {
		violations = StyleViolation.Render(strings.Join(s.Violations, ", "))
	}
	printKeyValue(w, "violations", violations)
	printKeyValue(w, "invariants", fmt.Sprint(s.Invariants))
	printKeyValue(w, "sink", fmt.Sprint(s.HasSink))
	if len(s.Threads) > 0 {
		printKeyValue(w, "threads", strings.Join(s.Threads, ", "))
	}
	for _, k := range slices.Sorted(maps.Keys(s.EdgeKeys)) {
		printDetail(w, "%s on %d edges", k, s.EdgeKeys[k])
	}
	if node != "" {
		return c.printNode(g, node)
	}
	return nil
}
