package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"venv-wizard/internal/cli"
	"venv-wizard/internal/config"
	"venv-wizard/internal/installer"
	"venv-wizard/internal/launcher"
	"venv-wizard/internal/platform"
	"venv-wizard/internal/ui"
)

var (
	rootDir    string
	configFile string
	debug      bool

	forceGUI bool
	forceCLI bool
	venvOnly bool
	depsOnly bool

	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Set up the project's Python virtual environment",
	Long: `wizard prepares an isolated Python environment for a project.

It checks the interpreter version, creates the virtual environment,
upgrades pip and installs the dependencies listed in the manifest.
The graphical installer is used when a display is available, the
command-line installer otherwise.

Usage:
  wizard                       - Auto-detect GUI or CLI
  wizard --gui                 - Force the graphical installer
  wizard --cli                 - Force the command-line installer
  wizard --cli --venv-only     - Only create the virtual environment
  wizard --cli --deps-only     - Only install dependencies
  wizard install               - Run the command-line installer directly
  wizard gui                   - Run the graphical installer directly`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLauncher,
}

// Execute 运行命令并返回进程退出码
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) int {
	exitCode = 0
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root directory (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: <root>/installer.{yaml,toml,json})")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to stderr")

	rootCmd.Flags().BoolVar(&forceGUI, "gui", false, "Force the graphical installer")
	rootCmd.Flags().BoolVar(&forceCLI, "cli", false, "Force the command-line installer")
	rootCmd.Flags().BoolVar(&venvOnly, "venv-only", false, "Only create the virtual environment (requires --cli)")
	rootCmd.Flags().BoolVar(&depsOnly, "deps-only", false, "Only install dependencies (requires --cli)")
}

func runLauncher(cmd *cobra.Command, _ []string) error {
	opts := launcher.Options{GUI: forceGUI, CLI: forceCLI, VenvOnly: venvOnly, DepsOnly: depsOnly}

	// 参数组合错误时不读取配置
	if err := launcher.Validate(opts); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
		exitCode = 1
		return nil
	}

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}

	l := &launcher.Launcher{
		Out:   cmd.OutOrStdout(),
		Probe: ui.Available,
		Hint:  ui.InstallHint(env.cfg.OS),
		RunGUI: func(ctx context.Context) error {
			return ui.Run(ctx, env.cfg, env.logger)
		},
		RunCLI: func(_ context.Context, venvOnly, depsOnly bool) int {
			return env.runCLI(cmd, cli.Options{VenvOnly: venvOnly, DepsOnly: depsOnly})
		},
	}
	exitCode = l.Launch(cmd.Context(), opts)
	return nil
}

// environment 汇总一次运行所需的配置与日志
type environment struct {
	settings config.Settings
	cfg      installer.Config
	logger   *slog.Logger
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	root := rootDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	settings, err := config.Load(root, configFile)
	if err != nil {
		return nil, err
	}
	if debug {
		settings.Debug = true
	}

	logger := newLogger(cmd.ErrOrStderr(), settings.Debug)
	logger.Debug("configuration loaded",
		"root", settings.Root,
		"file", settings.File,
		"env_dir", settings.EnvDir,
		"manifest", settings.Manifest,
		"min_python", settings.MinPython,
	)

	return &environment{
		settings: settings,
		cfg:      settings.Installer(platform.Detect()),
		logger:   logger,
	}, nil
}

// runCLI 运行命令行安装器，结束后恢复终端模式
func (e *environment) runCLI(cmd *cobra.Command, opts cli.Options) int {
	out := cmd.OutOrStdout()
	palette, restore := cli.DetectPalette(out, e.cfg.OS)
	defer func() {
		_ = restore()
	}()

	f := &cli.Frontend{
		Out:     out,
		In:      cmd.InOrStdin(),
		Palette: palette,
		Config:  e.cfg,
		Logger:  e.logger,
	}
	return f.Run(cmd.Context(), opts)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
