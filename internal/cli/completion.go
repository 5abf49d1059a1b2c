package cli

import "github.com/spf13/cobra"

// completionCommand creates the completion command. Scripts go to the
// command output so they can be redirected or sourced directly.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for witness.

  $ source <(witness completion bash)
  $ witness completion zsh > "${fpath[1]}/_witness"
  $ witness completion fish > ~/.config/fish/completions/witness.fish

File arguments complete as paths, so witness files and glob patterns for
validate can be tab-completed.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(c.out)
			default:
				return root.GenBashCompletionV2(c.out, true)
			}
		},
	}
}
