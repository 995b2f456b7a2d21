package installer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVersionTooOld      = errors.New("interpreter version too old")
	ErrInterpreterMissing = errors.New("interpreter not available")
	ErrEnvCreate          = errors.New("virtual environment creation failed")
	ErrDepsInstall        = errors.New("dependency installation failed")
	ErrEnvMissing         = errors.New("virtual environment not found")
	ErrInvalidFlags       = errors.New("invalid flag combination")
)

// CommandError 外部命令以非零状态退出
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
