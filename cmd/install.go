package cmd

import (
	"github.com/spf13/cobra"

	"venv-wizard/internal/cli"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the command-line installer",
	Long: `Run the command-line installer without probing for a display.

Examples:
  wizard install
  wizard install --venv-only
  wizard install --deps-only
  wizard install --root ../other-project`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

var (
	installVenvOnly bool
	installDepsOnly bool
)

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().BoolVar(&installVenvOnly, "venv-only", false, "Only create the virtual environment")
	installCmd.Flags().BoolVar(&installDepsOnly, "deps-only", false, "Only install dependencies")
}

func runInstall(cmd *cobra.Command, _ []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	exitCode = env.runCLI(cmd, cli.Options{VenvOnly: installVenvOnly, DepsOnly: installDepsOnly})
	return nil
}
