package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "completion [bash|zsh|fish|powershell]",
		Short:   "Generate shell completion scripts",
		GroupID: "utility",
		Long: `Generate a shell completion script for lookupkit.

Bash (requires the bash-completion package):
  $ source <(lookupkit completion bash)
  $ lookupkit completion bash > /etc/bash_completion.d/lookupkit

Zsh:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ lookupkit completion zsh > "${fpath[1]}/_lookupkit"

Fish:
  $ lookupkit completion fish > ~/.config/fish/completions/lookupkit.fish

PowerShell:
  PS> lookupkit completion powershell | Out-String | Invoke-Expression

Start a new shell for the setup to take effect.`,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             completionShells,
		DisableFlagsInUseLine: true,
		// buildDeps creates the config file; completion scripts must not
		// touch the filesystem, so root's hook is replaced with a no-op.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
