package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"venv-wizard/internal/installer"
	"venv-wizard/internal/platform"
)

const ruleWidth = 68

type Options struct {
	VenvOnly bool
	DepsOnly bool
}

// Frontend 同步驱动安装器并在终端输出带颜色的状态
type Frontend struct {
	Out     io.Writer
	In      io.Reader
	Palette Palette
	Config  installer.Config
	Logger  *slog.Logger

	// Optional collaborators, the real implementations are used when nil.
	Runner   installer.Runner
	Fs       afero.Fs
	Prompter installer.Prompter
}

// Run 执行一次完整的命令行安装，返回进程退出码
func (f *Frontend) Run(ctx context.Context, opts Options) int {
	mode, err := installer.ValidateModeFlags(opts.VenvOnly, opts.DepsOnly)
	if err != nil {
		fmt.Fprintln(f.Out, "Error: Cannot use --venv-only and --deps-only together")
		return 1
	}

	f.printHeader()

	inst := installer.New(f.Config, f.options()...)
	outcome := inst.Run(ctx, mode)
	if !outcome.OK() {
		return 1
	}

	f.printNextSteps(inst)
	return 0
}

func (f *Frontend) options() []installer.Option {
	opts := []installer.Option{
		installer.WithReporter(&consoleReporter{out: f.Out, p: f.Palette}),
	}
	if f.Logger != nil {
		opts = append(opts, installer.WithLogger(f.Logger))
	}
	if f.Runner != nil {
		opts = append(opts, installer.WithRunner(f.Runner))
	}
	if f.Fs != nil {
		opts = append(opts, installer.WithFs(f.Fs))
	}

	prompter := f.Prompter
	if prompter == nil {
		prompter = NewLinePrompter(f.In, f.Out)
	}
	return append(opts, installer.WithPrompter(prompter))
}

func (f *Frontend) printHeader() {
	rule := f.Palette.Heading(strings.Repeat("=", ruleWidth))
	fmt.Fprintln(f.Out)
	fmt.Fprintln(f.Out, rule)
	fmt.Fprintln(f.Out, f.Palette.Heading("Environment Setup - Cross-Platform Installation"))
	fmt.Fprintln(f.Out, rule)
	fmt.Fprintf(f.Out, "\nPlatform: %s\n\n", platform.Name(f.Config.OS))
}

func (f *Frontend) printNextSteps(inst *installer.Installer) {
	p := f.Palette
	rule := p.Heading(strings.Repeat("=", ruleWidth))

	fmt.Fprintln(f.Out)
	fmt.Fprintln(f.Out, rule)
	fmt.Fprintln(f.Out, p.OK("✓ Installation Complete!"))
	fmt.Fprintln(f.Out, rule)
	fmt.Fprintln(f.Out)
	fmt.Fprintln(f.Out, p.Bold("Next steps:"))
	fmt.Fprintln(f.Out)

	for _, line := range inst.NextSteps() {
		// 缩进行是命令，高亮显示
		if strings.HasPrefix(line, "   ") {
			fmt.Fprintln(f.Out, "   "+p.Command(strings.TrimPrefix(line, "   ")))
			continue
		}
		fmt.Fprintln(f.Out, line)
	}
	fmt.Fprintln(f.Out)

	if tip := inst.PerformanceTip(); tip != "" {
		fmt.Fprintln(f.Out, p.Warn("Performance tip:"))
		fmt.Fprintf(f.Out, "  %s\n\n", tip)
	}
}

type consoleReporter struct {
	out io.Writer
	p   Palette
}

func (r *consoleReporter) Step(msg string) {
	fmt.Fprintln(r.out, r.p.Heading(msg))
}

func (r *consoleReporter) Success(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.p.OK("✓"), msg)
}

func (r *consoleReporter) Warn(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.p.Warn("⚠"), msg)
}

func (r *consoleReporter) Fail(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.p.Fail("✗"), msg)
}

func (r *consoleReporter) Info(msg string) {
	fmt.Fprintln(r.out, msg)
}
