package cli

import (
	"context"
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/matzehuels/witness/pkg/buildinfo"
	pkgio "github.com/matzehuels/witness/pkg/io"
	"github.com/matzehuels/witness/pkg/witness"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output   string // output path, "-" for stdout
	producer string // overrides the producer metadata
	program  string // program file: sets programfile and programhash
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{output: stdoutPath}

	cmd := &cobra.Command{
		Use:   "convert <witness.graphml>",
		Short: "Re-emit a witness in the canonical schema",
		Long: `Re-emit a witness in the canonical schema.

The witness is imported (defaults declared by its keys are backfilled into
every edge) and written with the full key preamble. Graph metadata starts
from the data entries of the input's graph element; the [metadata] table of
the config file overrides those, and --producer and --program override both.
Without any producer the tool records itself.

The entry marker is re-derived on write: the first node that is not "sink"
becomes the entry node.

Output ending in .zst is zstd-compressed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (- for stdout)")
	cmd.Flags().StringVar(&opts.producer, "producer", "", "producer metadata")
	cmd.Flags().StringVar(&opts.program, "program", "", "program file to record and hash")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input string, opts convertOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, entry, err := pkgio.ImportGraphML(input)
	if err != nil {
		return fmt.Errorf("import %s: %w", input, err)
	}
	logger.Debug("Imported witness", "nodes", g.Size(), "edges", g.EdgeCount(), "entry", g.Node(entry).Name)

	kv, err := pkgio.ImportMetadata(input)
	if err != nil {
		return fmt.Errorf("read metadata of %s: %w", input, err)
	}
	maps.Copy(g.KeyValues, kv)
	logger.Debug("Carried graph metadata", "keys", len(kv))

	cfg.Apply(g)
	if opts.producer != "" {
		g.KeyValues[witness.KeyProducer] = opts.producer
	}
	if _, ok := g.KeyValues[witness.KeyProducer]; !ok {
		g.KeyValues[witness.KeyProducer] = buildinfo.Producer()
	}
	if opts.program != "" {
		hash, err := witness.HashProgramFile(opts.program)
		if err != nil {
			return fmt.Errorf("hash program: %w", err)
		}
		g.KeyValues[witness.KeyProgramFile] = opts.program
		g.KeyValues[witness.KeyProgramHash] = hash
	}

	if opts.output == stdoutPath {
		return pkgio.WriteGraphML(g, c.out)
	}
	if err := pkgio.ExportGraphML(g, opts.output); err != nil {
		return fmt.Errorf("export %s: %w", opts.output, err)
	}
	printSuccess(c.out, "Converted %s", input)
	printFile(c.out, opts.output)
	return nil
}
