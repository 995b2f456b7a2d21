package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"venv-wizard/internal/ui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Run the graphical installer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		if err := ui.Run(cmd.Context(), env.cfg, env.logger); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n\n%s\n", err, ui.InstallHint(env.cfg.OS))
			exitCode = 1
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
