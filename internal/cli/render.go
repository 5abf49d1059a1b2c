package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/witness/pkg/errors"
	pkgio "github.com/matzehuels/witness/pkg/io"
	"github.com/matzehuels/witness/pkg/render/nodelink"
)

// renderCommand creates the render command for node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render <witness.graphml>",
		Short: "Draw a witness as a node-link diagram",
		Long: `Draw a witness as a node-link diagram.

The output format follows the extension of -o: .dot writes Graphviz source,
anything else is rendered to SVG. Without -o the SVG is written next to the
input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot or .svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show invariants and edge data")

	return cmd
}

// defaultRenderPath derives "<input without extensions>.svg".
func defaultRenderPath(input string) string {
	base := strings.TrimSuffix(input, ".zst")
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".svg"
}

func (c *CLI) runRender(ctx context.Context, input, output string, detailed bool) error {
	g, entry, err := pkgio.ImportGraphML(input)
	if err != nil {
		return fmt.Errorf("import %s: %w", input, err)
	}
	if output == "" {
		output = defaultRenderPath(input)
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Entry: entry, Detailed: detailed})
	data := []byte(dot)
	if filepath.Ext(output) != ".dot" {
		loggerFromContext(ctx).Debug("Rendering SVG", "nodes", g.Size())
		if data, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return err
		}
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", output)
	}
	printSuccess(c.out, "Rendered %s", input)
	printFile(c.out, output)
	return nil
}
