package cli

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/witness/pkg/errors"
	pkgio "github.com/matzehuels/witness/pkg/io"
)

// validateCommand creates the validate command for batch import checks.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pattern>...",
		Short: "Check that witness files import cleanly",
		Long: `Check that witness files import cleanly.

Each argument is a file path or a doublestar glob pattern:

  witness validate results/**/*.graphml
  witness validate 'runs/*/witness.graphml.zst'

Every matching file is imported; failures are reported with their error
code and the command exits non-zero if any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
}

// expandPatterns resolves each pattern with doublestar. A pattern without
// matches is kept as a literal path so that its import error is reported.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		if !doublestar.ValidatePathPattern(p) {
			return nil, errs.New(errs.ErrCodeInvalidPath, "invalid pattern %q", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "expand %q", p)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func (c *CLI) runValidate(ctx context.Context, patterns []string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	logger.Debug("Expanded patterns", "files", len(files))

	failed := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, entry, err := pkgio.ImportGraphML(f)
		if err != nil {
			failed++
			printError(c.out, "%s", f)
			printDetail(c.out, "%s", err)
			continue
		}
		printSuccess(c.out, "%s", f)
		printDetail(c.out, "%d nodes · %d edges · entry %s", g.Size(), g.EdgeCount(), g.Node(entry).Name)
	}

	prog.done(fmt.Sprintf("Validated %d witnesses", len(files)))
	if failed > 0 {
		printInfo(c.out, "%s", StyleWarning.Render(fmt.Sprintf("%d of %d failed", failed, len(files))))
		return fmt.Errorf("%d of %d witnesses failed to import", failed, len(files))
	}
	return nil
}
