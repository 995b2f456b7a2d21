package installer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// Command 描述一次外部命令调用
type Command struct {
	Name string
	Args []string
	Dir  string

	// OnLine receives every output line (stdout and stderr) as it is produced.
	OnLine func(line string)
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

type Result struct {
	Stdout string
	Stderr string
}

// Runner 执行外部命令并等待其结束
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec. There is no timeout; a command runs
// until it exits or ctx is cancelled.
type ExecRunner struct {
	Logger *slog.Logger
}

func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExecRunner{Logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	r.Logger.Debug("executing", "name", c.Name, "args", c.Args, "dir", c.Dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	var lines *lineWriter
	if c.OnLine != nil {
		lines = &lineWriter{fn: c.OnLine}
		cmd.Stdout = io.MultiWriter(&stdout, lines)
		cmd.Stderr = io.MultiWriter(&stderr, lines)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if lines != nil {
		lines.Flush()
	}

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		r.Logger.Debug("command failed", "command", c.String(), "exit_code", code, "error", err)

		text := res.Stderr
		if text == "" && code == -1 {
			text = err.Error()
		}
		return res, &CommandError{Command: c.String(), ExitCode: code, Stderr: text, Err: err}
	}

	return res, nil
}

// lineWriter 按行切分输出，stdout 与 stderr 可能并发写入
type lineWriter struct {
	mu  sync.Mutex
	buf []byte
	fn  func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.fn(strings.TrimRight(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.fn(strings.TrimRight(string(w.buf), "\r"))
		w.buf = nil
	}
}
