package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tilelay.

  Bash:       source <(tilelay completion bash)
  Zsh:        tilelay completion zsh > "${fpath[1]}/_tilelay"
  Fish:       tilelay completion fish | source
  PowerShell: tilelay completion powershell | Out-String | Invoke-Expression

Wall names of ./tilelay.toml complete for --wall.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeWalls completes --wall from the project file in the working
// directory.
func completeWalls(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	in := layoutInput{}
	if f := cmd.Flags().Lookup("project"); f != nil {
		in.project = f.Value.String()
	}
	proj, err := in.loadProject()
	if err != nil || proj == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return proj.WallNames(), cobra.ShellCompDirectiveNoFileComp
}
