package installer

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venv-wizard/internal/platform"
)

type fakeRunner struct {
	fs      afero.Fs
	version string
	fail    map[string]error
	calls   []Command
}

func (f *fakeRunner) Run(_ context.Context, c Command) (Result, error) {
	f.calls = append(f.calls, c)
	line := c.String()
	for pattern, err := range f.fail {
		if strings.Contains(line, pattern) {
			return Result{}, err
		}
	}

	switch {
	case len(c.Args) == 1 && c.Args[0] == "--version":
		return Result{Stdout: "Python " + f.version + "\n"}, nil
	case len(c.Args) == 3 && c.Args[1] == "venv":
		bin := filepath.Join(c.Args[2], "bin")
		if err := f.fs.MkdirAll(bin, 0o755); err != nil {
			return Result{}, err
		}
		return Result{}, afero.WriteFile(f.fs, filepath.Join(bin, "python"), []byte("#!/bin/sh\n"), 0o755)
	case strings.Contains(line, "import "):
		return Result{Stdout: "3.1.43\n"}, nil
	case strings.Contains(line, "install -r") && c.OnLine != nil:
		c.OnLine("Collecting GitPython")
		c.OnLine("Successfully installed GitPython-3.1.43")
	}
	return Result{}, nil
}

func (f *fakeRunner) ran(pattern string) bool {
	for _, c := range f.calls {
		if strings.Contains(c.String(), pattern) {
			return true
		}
	}
	return false
}

type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Step(msg string)    { r.lines = append(r.lines, "step: "+msg) }
func (r *recordingReporter) Success(msg string) { r.lines = append(r.lines, "ok: "+msg) }
func (r *recordingReporter) Warn(msg string)    { r.lines = append(r.lines, "warn: "+msg) }
func (r *recordingReporter) Fail(msg string)    { r.lines = append(r.lines, "fail: "+msg) }
func (r *recordingReporter) Info(msg string)    { r.lines = append(r.lines, "info: "+msg) }

func (r *recordingReporter) has(prefix, substr string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, prefix) && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

const root = "/work/project"

func newTestInstaller(t *testing.T, version string, answer bool) (*Installer, *fakeRunner, *recordingReporter, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))

	runner := &fakeRunner{fs: fs, version: version, fail: map[string]error{}}
	rep := &recordingReporter{}
	inst := New(Config{
		Root:         root,
		OS:           platform.Linux,
		Accelerant:   Accelerant{Module: "git", Name: "GitPython", Hint: "80x faster git operations"},
		TestCommands: []string{"tests/core/test_memory_context_integration.py"},
	}, WithRunner(runner), WithFs(fs), WithPrompter(FixedAnswer(answer)), WithReporter(rep))

	return inst, runner, rep, fs
}

func TestRunFullInstallWithoutManifest(t *testing.T) {
	inst, runner, rep, fs := newTestInstaller(t, "3.11.2", false)

	out := inst.Run(context.Background(), ModeFull)

	require.True(t, out.OK(), "outcome: %+v", out)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, "3.11.2", inst.Version())

	exists, err := afero.DirExists(fs, filepath.Join(root, "venv"))
	require.NoError(t, err)
	assert.True(t, exists)

	assert.True(t, runner.ran("-m venv"))
	assert.False(t, runner.ran("install -r"))
	assert.True(t, rep.has("warn:", "requirements.txt not found"))
}

func TestRunVersionTooOldStopsBeforeEnvironment(t *testing.T) {
	inst, runner, rep, _ := newTestInstaller(t, "3.7.9", false)

	out := inst.Run(context.Background(), ModeFull)

	assert.False(t, out.OK())
	assert.Equal(t, StateFailed, out.State)
	assert.ErrorIs(t, out.Err, ErrVersionTooOld)
	assert.Contains(t, out.Message, "found 3.7.9")
	assert.False(t, runner.ran("-m venv"))
	assert.Len(t, runner.calls, 1)
	assert.True(t, rep.has("fail:", "3.8+ required"))
}

func TestRunDepsOnlyRequiresEnvironment(t *testing.T) {
	inst, runner, _, fs := newTestInstaller(t, "3.12.0", true)

	out := inst.Run(context.Background(), ModeDepsOnly)

	assert.Equal(t, StateFailed, out.State)
	assert.ErrorIs(t, out.Err, ErrEnvMissing)
	assert.False(t, runner.ran("pip"))
	assert.False(t, runner.ran("-m venv"))

	exists, _ := afero.DirExists(fs, filepath.Join(root, "venv"))
	assert.False(t, exists, "deps-only mode must not create the environment")
}

func TestRunEnvOnlySkipsDependencies(t *testing.T) {
	inst, runner, _, fs := newTestInstaller(t, "3.10.4", false)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "requirements.txt"), []byte("GitPython\n"), 0o644))

	out := inst.Run(context.Background(), ModeEnvOnly)

	require.True(t, out.OK())
	assert.True(t, runner.ran("-m venv"))
	assert.False(t, runner.ran("pip"))
}

func TestEnsureEnvironmentReuseLeavesDirectoryUntouched(t *testing.T) {
	inst, runner, rep, fs := newTestInstaller(t, "3.11.2", false)

	marker := filepath.Join(root, "venv", "lib", "site.py")
	require.NoError(t, fs.MkdirAll(filepath.Dir(marker), 0o755))
	require.NoError(t, afero.WriteFile(fs, marker, []byte("original contents"), 0o644))
	before := snapshot(t, fs, filepath.Join(root, "venv"))

	err := inst.EnsureEnvironment(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, before, snapshot(t, fs, filepath.Join(root, "venv")))
	assert.Empty(t, runner.calls)
	assert.True(t, rep.has("ok:", "Using existing virtual environment"))
}

func TestEnsureEnvironmentRecreateOnConfirm(t *testing.T) {
	inst, runner, _, fs := newTestInstaller(t, "3.11.2", true)

	stale := filepath.Join(root, "venv", "stale.txt")
	require.NoError(t, fs.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, afero.WriteFile(fs, stale, []byte("old"), 0o644))

	require.NoError(t, inst.EnsureEnvironment(context.Background(), false))

	found, _ := afero.Exists(fs, stale)
	assert.False(t, found)
	assert.True(t, runner.ran("-m venv"))
}

func TestEnsureEnvironmentFailureCarriesStderr(t *testing.T) {
	inst, runner, _, _ := newTestInstaller(t, "3.11.2", false)
	runner.fail["-m venv"] = &CommandError{Command: "python3 -m venv", ExitCode: 1, Stderr: "ensurepip is not available"}

	err := inst.EnsureEnvironment(context.Background(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnvCreate)
	assert.Contains(t, err.Error(), "ensurepip is not available")
}

func TestInstallDependenciesFromManifest(t *testing.T) {
	inst, runner, rep, fs := newTestInstaller(t, "3.11.2", false)
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "venv", "bin"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "requirements.txt"), []byte("GitPython>=3.1\n"), 0o644))

	require.NoError(t, inst.InstallDependencies(context.Background()))

	assert.True(t, runner.ran("pip install --upgrade pip"))
	assert.True(t, runner.ran("install -r "+filepath.Join(root, "requirements.txt")))
	assert.True(t, rep.has("info:", "Successfully installed GitPython"))
	assert.True(t, rep.has("ok:", "GitPython 3.1.43 installed (80x faster git operations)"))
}

func TestAccelerantProbeFailureIsOnlyAWarning(t *testing.T) {
	inst, runner, rep, fs := newTestInstaller(t, "3.11.2", false)
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "venv", "bin"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "requirements.txt"), []byte("requests\n"), 0o644))
	runner.fail["import git"] = &CommandError{ExitCode: 1, Stderr: "ModuleNotFoundError: No module named 'git'"}

	require.NoError(t, inst.InstallDependencies(context.Background()))
	assert.True(t, rep.has("warn:", "GitPython not installed"))
}

func TestInstallDependenciesFailure(t *testing.T) {
	inst, runner, _, fs := newTestInstaller(t, "3.11.2", false)
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "venv", "bin"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "requirements.txt"), []byte("nope==0\n"), 0o644))
	runner.fail["install -r"] = &CommandError{ExitCode: 1, Stderr: "No matching distribution found for nope==0"}

	err := inst.InstallDependencies(context.Background())

	assert.ErrorIs(t, err, ErrDepsInstall)
	assert.Contains(t, err.Error(), "No matching distribution")
	assert.False(t, runner.ran("import git"))
}

func TestCheckVersionInterpreterMissing(t *testing.T) {
	inst, runner, _, _ := newTestInstaller(t, "", false)
	runner.fail["--version"] = &CommandError{
		Command:  "python3 --version",
		ExitCode: -1,
		Err:      &exec.Error{Name: "python3", Err: exec.ErrNotFound},
	}

	err := inst.CheckVersion(context.Background())

	assert.ErrorIs(t, err, ErrInterpreterMissing)
	assert.Contains(t, err.Error(), "python3 not found")
}

func TestInterpreterOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := &fakeRunner{fs: fs, version: "3.9.1"}
	inst := New(Config{Root: root, OS: platform.Linux, Interpreter: "/opt/py/bin/python3.9"},
		WithRunner(runner), WithFs(fs))

	require.NoError(t, inst.CheckVersion(context.Background()))
	assert.Equal(t, "/opt/py/bin/python3.9", runner.calls[0].Name)
}

func TestValidateModeFlags(t *testing.T) {
	mode, err := ValidateModeFlags(false, false)
	require.NoError(t, err)
	assert.Equal(t, ModeFull, mode)

	mode, err = ValidateModeFlags(true, false)
	require.NoError(t, err)
	assert.Equal(t, ModeEnvOnly, mode)

	mode, err = ValidateModeFlags(false, true)
	require.NoError(t, err)
	assert.Equal(t, ModeDepsOnly, mode)

	_, err = ValidateModeFlags(true, true)
	assert.True(t, errors.Is(err, ErrInvalidFlags))
}

func TestNextSteps(t *testing.T) {
	inst, _, _, _ := newTestInstaller(t, "3.11.2", false)

	steps := strings.Join(inst.NextSteps(), "\n")

	assert.Contains(t, steps, "source "+filepath.Join(root, "venv", "bin", "activate"))
	assert.Contains(t, steps, "python3 tests/core/test_memory_context_integration.py")
	assert.Contains(t, steps, "deactivate")
	assert.Equal(t, "GitPython provides 80x faster git operations.", inst.PerformanceTip())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "env-ready", StateEnvReady.String())
	assert.Equal(t, "failed", StateFailed.String())
}

func snapshot(t *testing.T, fs afero.Fs, dir string) map[string]string {
	t.Helper()

	files := map[string]string{}
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			files[path] = "dir"
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		files[path] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}
