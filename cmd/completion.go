package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate a shell completion for npmsweep",
	Long: `To load completions:

Bash:

$ source <(npmsweep completion bash)

# To load completions for each session, execute once:
Linux:
  $ npmsweep completion bash > /etc/bash_completion.d/npmsweep
MacOS:
  $ npmsweep completion bash > /usr/local/etc/bash_completion.d/npmsweep

Zsh:

# If shell completion is not already enabled in your environment you will need
# to enable it.  You can execute the following once:

$ echo "autoload -U compinit; compinit" >> ~/.zshrc

# To load completions for each session, execute once:
$ npmsweep completion zsh > "${fpath[1]}/_npmsweep"

# You will need to start a new shell for this setup to take effect.

Fish:

$ npmsweep completion fish | source

# To load completions for each session, execute once:
$ npmsweep completion fish > ~/.config/fish/completions/npmsweep.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		default:
			return cmd.Root().GenBashCompletion(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
