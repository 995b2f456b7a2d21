package launcher

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type Options struct {
	GUI      bool
	CLI      bool
	VenvOnly bool
	DepsOnly bool
}

// Launcher 自动检测图形界面是否可用并选择 GUI 或 CLI 安装器
type Launcher struct {
	Out io.Writer

	// Probe reports why the GUI toolkit cannot be loaded, nil when it can.
	Probe func() error
	// Hint is printed when the GUI is forced but unavailable.
	Hint string

	RunGUI func(ctx context.Context) error
	RunCLI func(ctx context.Context, venvOnly, depsOnly bool) int
}

// Validate 在任何安装动作之前检查参数组合
func Validate(opts Options) error {
	if opts.GUI && opts.CLI {
		return fmt.Errorf("--gui and --cli cannot be used together")
	}
	if (opts.VenvOnly || opts.DepsOnly) && !opts.CLI {
		return fmt.Errorf("--venv-only and --deps-only require --cli mode")
	}
	if opts.VenvOnly && opts.DepsOnly {
		return fmt.Errorf("cannot use --venv-only and --deps-only together")
	}
	return nil
}

// Launch 返回进程退出码
func (l *Launcher) Launch(ctx context.Context, opts Options) int {
	if err := Validate(opts); err != nil {
		fmt.Fprintf(l.Out, "Error: %v\n", err)
		return 1
	}

	l.printBanner()

	switch {
	case opts.GUI:
		if err := l.Probe(); err != nil {
			fmt.Fprintf(l.Out, "Error: GUI mode requested but the toolkit is not available (%v)\n", err)
			if l.Hint != "" {
				fmt.Fprintf(l.Out, "\n%s\n", l.Hint)
			}
			return 1
		}
		return l.launchGUI(ctx)

	case opts.CLI:
		return l.launchCLI(ctx, opts.VenvOnly, opts.DepsOnly)
	}

	if err := l.Probe(); err != nil {
		fmt.Fprintln(l.Out, "ℹ GUI not available - launching command-line installer")
		fmt.Fprintf(l.Out, "  (%v)\n\n", err)
		return l.launchCLI(ctx, false, false)
	}

	fmt.Fprintln(l.Out, "✓ GUI available - launching graphical installer")
	fmt.Fprintln(l.Out, "  (Use --cli flag to force command-line mode)")
	fmt.Fprintln(l.Out)
	return l.launchGUI(ctx)
}

func (l *Launcher) launchGUI(ctx context.Context) int {
	fmt.Fprintln(l.Out, "Launching GUI installer...")
	if err := l.RunGUI(ctx); err != nil {
		fmt.Fprintf(l.Out, "Failed to launch GUI installer: %v\n", err)
		fmt.Fprintln(l.Out, "\nFalling back to CLI installer...")
		return l.launchCLI(ctx, false, false)
	}
	return 0
}

func (l *Launcher) launchCLI(ctx context.Context, venvOnly, depsOnly bool) int {
	fmt.Fprintln(l.Out, "Launching CLI installer...")
	return l.RunCLI(ctx, venvOnly, depsOnly)
}

func (l *Launcher) printBanner() {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(l.Out)
	fmt.Fprintln(l.Out, rule)
	fmt.Fprintln(l.Out, "Environment Setup Wizard")
	fmt.Fprintln(l.Out, rule)
	fmt.Fprintln(l.Out)
}
