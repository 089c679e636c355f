package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// shells lists the shells complete can generate scripts for.
var shells = []string{"bash", "zsh", "fish", "powershell"}

var completeCmd = &cobra.Command{
	Use:       "complete <shell>",
	Short:     "Generate shell completions",
	Long:      `Complete writes a completion script for sxp to stdout. Supported shells: bash, zsh, fish, powershell.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: shells,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := bufio.NewWriter(cmd.OutOrStdout())
		if err := writeCompletion(out, cmd.Root(), args[0]); err != nil {
			return err
		}
		return out.Flush()
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}

// writeCompletion writes root's completion script for shell to w.
func writeCompletion(w io.Writer, root *cobra.Command, shell string) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}
