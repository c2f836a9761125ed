package cmd

import (
	"fmt"

	"github.com/josephlewis42/gosh/core/shell"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands built into the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, kind := range shell.Builtins() {
			fmt.Fprintln(cmd.OutOrStdout(), kind)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
