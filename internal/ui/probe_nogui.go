//go:build nogui

package ui

import (
	"context"
	"fmt"
	"log/slog"

	"venv-wizard/internal/installer"
)

func Available() error {
	return fmt.Errorf("%w: built with the nogui tag", ErrToolkitUnavailable)
}

func Run(_ context.Context, _ installer.Config, _ *slog.Logger) error {
	return Available()
}
