package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"venv-wizard/internal/platform"
)

type State int

const (
	StateStart State = iota
	StateVersionChecked
	StateEnvReady
	StateDepsReady
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateVersionChecked:
		return "version-checked"
	case StateEnvReady:
		return "env-ready"
	case StateDepsReady:
		return "deps-ready"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Mode int

const (
	ModeFull Mode = iota
	ModeEnvOnly
	ModeDepsOnly
)

// ValidateModeFlags 将 --venv-only / --deps-only 转换为运行模式，两者互斥
func ValidateModeFlags(envOnly, depsOnly bool) (Mode, error) {
	switch {
	case envOnly && depsOnly:
		return ModeFull, fmt.Errorf("%w: cannot use --venv-only and --deps-only together", ErrInvalidFlags)
	case envOnly:
		return ModeEnvOnly, nil
	case depsOnly:
		return ModeDepsOnly, nil
	}
	return ModeFull, nil
}

// Outcome 是一次安装（或单个阶段）的结果
type Outcome struct {
	State   State
	Message string
	Err     error
}

func (o Outcome) OK() bool {
	return o.State == StateDone
}

type Accelerant struct {
	Module string
	Name   string
	Hint   string
}

// Config 安装器配置，项目根目录必须显式给出
type Config struct {
	Root         string
	EnvDir       string
	Manifest     string
	MinVersion   string
	Interpreter  string
	Accelerant   Accelerant
	TestCommands []string
	OS           string
}

type Installer struct {
	cfg    Config
	paths  platform.Paths
	runner Runner
	fs     afero.Fs
	prompt Prompter
	report Reporter
	logger *slog.Logger

	version string
}

type Option func(*Installer)

func WithRunner(r Runner) Option       { return func(i *Installer) { i.runner = r } }
func WithFs(fs afero.Fs) Option        { return func(i *Installer) { i.fs = fs } }
func WithPrompter(p Prompter) Option   { return func(i *Installer) { i.prompt = p } }
func WithReporter(r Reporter) Option   { return func(i *Installer) { i.report = r } }
func WithLogger(l *slog.Logger) Option { return func(i *Installer) { i.logger = l } }

func New(cfg Config, opts ...Option) *Installer {
	if cfg.OS == "" {
		cfg.OS = platform.Detect()
	}
	if cfg.EnvDir == "" {
		cfg.EnvDir = "venv"
	}
	if cfg.Manifest == "" {
		cfg.Manifest = "requirements.txt"
	}
	if cfg.MinVersion == "" {
		cfg.MinVersion = "3.8"
	}

	envPath := cfg.EnvDir
	if !filepath.IsAbs(envPath) {
		envPath = filepath.Join(cfg.Root, envPath)
	}

	i := &Installer{
		cfg:    cfg,
		paths:  platform.Resolve(cfg.OS, envPath),
		fs:     afero.NewOsFs(),
		prompt: FixedAnswer(false),
		report: discardReporter{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.runner == nil {
		i.runner = NewExecRunner(i.logger)
	}
	if cfg.Interpreter != "" {
		i.paths.Interpreter = cfg.Interpreter
	}
	return i
}

func (i *Installer) Paths() platform.Paths { return i.paths }

func (i *Installer) Config() Config { return i.cfg }

// Version 返回最近一次版本检查得到的解释器版本
func (i *Installer) Version() string { return i.version }

// Run 按顺序执行各阶段：版本检查 → 创建环境 → 安装依赖 → 完成
func (i *Installer) Run(ctx context.Context, mode Mode) Outcome {
	logger := i.logger.With("run_id", uuid.NewString(), "mode", int(mode))
	logger.Info("installation started", "root", i.cfg.Root, "os", i.cfg.OS)

	steps := []struct {
		name  string
		state State
		skip  bool
		fn    func(context.Context) error
	}{
		{"check interpreter version", StateVersionChecked, false, i.CheckVersion},
		{"create virtual environment", StateEnvReady, mode == ModeDepsOnly, func(ctx context.Context) error {
			return i.EnsureEnvironment(ctx, false)
		}},
		{"install dependencies", StateDepsReady, mode == ModeEnvOnly, i.InstallDependencies},
	}

	state := StateStart
	for _, step := range steps {
		if step.skip {
			logger.Debug("step skipped", "step", step.name)
			state = step.state
			continue
		}
		logger.Debug("step started", "step", step.name, "from", state.String())

		if err := step.fn(ctx); err != nil {
			logger.Warn("step failed", "step", step.name, "error", err)
			i.report.Fail(err.Error())
			return Outcome{State: StateFailed, Message: err.Error(), Err: err}
		}
		state = step.state
	}

	logger.Info("installation finished", "state", StateDone.String())
	return Outcome{State: StateDone, Message: "Installation complete!"}
}

// CheckVersion 检查解释器版本是否满足最低要求
func (i *Installer) CheckVersion(ctx context.Context) error {
	i.report.Step("Checking Python version...")

	res, err := i.runner.Run(ctx, Command{Name: i.paths.Interpreter, Args: []string{"--version"}, Dir: i.cfg.Root})
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s not found on PATH", ErrInterpreterMissing, i.paths.Interpreter)
		}
		return fmt.Errorf("%w: %v", ErrInterpreterMissing, err)
	}

	version, err := ParseVersion(res.Stdout + " " + res.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInterpreterMissing, err)
	}

	if !AtLeast(version, i.cfg.MinVersion) {
		return fmt.Errorf("%w: Python %s+ required (found %s)", ErrVersionTooOld, i.cfg.MinVersion, version)
	}

	i.version = version
	i.report.Success(fmt.Sprintf("Python %s detected", version))
	return nil
}

// EnsureEnvironment 创建虚拟环境；目录已存在时询问是否重建
func (i *Installer) EnsureEnvironment(ctx context.Context, recreate bool) error {
	i.report.Step("Creating virtual environment...")

	envDir := i.paths.EnvDir
	exists, err := afero.DirExists(i.fs, envDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnvCreate, err)
	}

	if exists {
		if !recreate {
			i.report.Warn(fmt.Sprintf("Virtual environment already exists at %s", envDir))
			recreate = i.prompt.Confirm("Do you want to recreate it?")
			if !recreate {
				i.report.Success("Using existing virtual environment")
				return nil
			}
		}

		i.report.Warn(fmt.Sprintf("Removing existing venv at %s", envDir))
		if err := i.fs.RemoveAll(envDir); err != nil {
			return fmt.Errorf("%w: remove %s: %v", ErrEnvCreate, envDir, err)
		}
	}

	_, err = i.runner.Run(ctx, Command{
		Name: i.paths.Interpreter,
		Args: []string{"-m", "venv", envDir},
		Dir:  i.cfg.Root,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnvCreate, err)
	}

	msg := fmt.Sprintf("Virtual environment created at %s", envDir)
	if size, err := i.dirSize(envDir); err == nil && size > 0 {
		msg += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(size)))
	}
	i.report.Success(msg)
	return nil
}

// InstallDependencies 升级 pip 并按清单文件安装依赖；清单文件不存在时视为成功
func (i *Installer) InstallDependencies(ctx context.Context) error {
	i.report.Step("Installing dependencies...")

	exists, err := afero.DirExists(i.fs, i.paths.EnvDir)
	if err != nil || !exists {
		return fmt.Errorf("%w: %s (run without --deps-only first)", ErrEnvMissing, i.paths.EnvDir)
	}

	i.report.Info("Upgrading pip...")
	_, err = i.runner.Run(ctx, Command{
		Name: i.paths.EnvPython,
		Args: []string{"-m", "pip", "install", "--upgrade", "pip"},
		Dir:  i.cfg.Root,
	})
	if err != nil {
		return fmt.Errorf("%w: upgrade pip: %v", ErrDepsInstall, err)
	}
	i.report.Success("pip upgraded")

	manifest := i.manifestPath()
	found, err := afero.Exists(i.fs, manifest)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDepsInstall, err)
	}
	if !found {
		i.report.Warn(fmt.Sprintf("%s not found, skipping dependency installation", i.cfg.Manifest))
		return nil
	}

	i.report.Info(fmt.Sprintf("Installing from %s...", i.cfg.Manifest))
	_, err = i.runner.Run(ctx, Command{
		Name:   i.paths.EnvPip,
		Args:   []string{"install", "-r", manifest},
		Dir:    i.cfg.Root,
		OnLine: i.report.Info,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDepsInstall, err)
	}
	i.report.Success(fmt.Sprintf("Dependencies installed from %s", i.cfg.Manifest))

	i.probeAccelerant(ctx)
	return nil
}

// probeAccelerant 仅用于输出提示，失败不影响安装结果
func (i *Installer) probeAccelerant(ctx context.Context) {
	acc := i.cfg.Accelerant
	if acc.Module == "" {
		return
	}
	name := acc.Name
	if name == "" {
		name = acc.Module
	}

	script := fmt.Sprintf("import %s; print(%s.__version__)", acc.Module, acc.Module)
	res, err := i.runner.Run(ctx, Command{Name: i.paths.EnvPython, Args: []string{"-c", script}, Dir: i.cfg.Root})
	if err != nil {
		i.logger.Debug("accelerant probe failed", "module", acc.Module, "error", err)
		i.report.Warn(fmt.Sprintf("%s not installed - falling back to the slower default", name))
		return
	}

	msg := fmt.Sprintf("%s %s installed", name, strings.TrimSpace(res.Stdout))
	if acc.Hint != "" {
		msg += " (" + acc.Hint + ")"
	}
	i.report.Success(msg)
}

// NextSteps 返回安装完成后提示给用户的后续步骤
func (i *Installer) NextSteps() []string {
	lines := []string{
		"1. Activate the virtual environment:",
		"   " + i.paths.Activate,
		"",
	}
	if len(i.cfg.TestCommands) > 0 {
		lines = append(lines, "2. Run tests to verify installation:")
		for _, tc := range i.cfg.TestCommands {
			lines = append(lines, "   "+i.paths.TestInterpreter+" "+tc)
		}
		lines = append(lines, "", "3. Deactivate when done:")
	} else {
		lines = append(lines, "2. Deactivate when done:")
	}
	lines = append(lines, "   "+i.paths.Deactivate)
	return lines
}

// PerformanceTip returns the accelerant note printed after the next steps.
func (i *Installer) PerformanceTip() string {
	acc := i.cfg.Accelerant
	if acc.Name == "" || acc.Hint == "" {
		return ""
	}
	return fmt.Sprintf("%s provides %s.", acc.Name, acc.Hint)
}

func (i *Installer) manifestPath() string {
	if filepath.IsAbs(i.cfg.Manifest) {
		return i.cfg.Manifest
	}
	return filepath.Join(i.cfg.Root, i.cfg.Manifest)
}

func (i *Installer) dirSize(dir string) (int64, error) {
	var size int64
	err := afero.Walk(i.fs, dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
