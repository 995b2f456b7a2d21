//go:build nogui

package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"venv-wizard/internal/installer"
)

func TestRunWithoutToolkit(t *testing.T) {
	assert.ErrorIs(t, Available(), ErrToolkitUnavailable)
	assert.ErrorIs(t, Run(context.Background(), installer.Config{}, nil), ErrToolkitUnavailable)
}
