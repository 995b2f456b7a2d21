package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type calls struct {
	probe int
	gui   int
	cli   int
	args  [2]bool
}

func newLauncher(probeErr, guiErr error, cliCode int) (*Launcher, *calls, *bytes.Buffer) {
	c := &calls{}
	out := &bytes.Buffer{}
	return &Launcher{
		Out:  out,
		Hint: "Install the OpenGL/X11 development libraries",
		Probe: func() error {
			c.probe++
			return probeErr
		},
		RunGUI: func(context.Context) error {
			c.gui++
			return guiErr
		},
		RunCLI: func(_ context.Context, venvOnly, depsOnly bool) int {
			c.cli++
			c.args = [2]bool{venvOnly, depsOnly}
			return cliCode
		},
	}, c, out
}

func TestLaunchRejectsInvalidCombinations(t *testing.T) {
	cases := []Options{
		{GUI: true, CLI: true},
		{VenvOnly: true},
		{DepsOnly: true},
		{GUI: true, DepsOnly: true},
		{CLI: true, VenvOnly: true, DepsOnly: true},
		{VenvOnly: true, DepsOnly: true},
	}
	for _, opts := range cases {
		l, c, out := newLauncher(nil, nil, 0)

		code := l.Launch(context.Background(), opts)

		assert.Equal(t, 1, code, "%+v", opts)
		assert.Equal(t, calls{}, *c, "%+v must not start any work", opts)
		assert.Contains(t, out.String(), "Error:")
	}
}

func TestLaunchAutoPrefersGUI(t *testing.T) {
	l, c, out := newLauncher(nil, nil, 0)

	assert.Equal(t, 0, l.Launch(context.Background(), Options{}))
	assert.Equal(t, 1, c.gui)
	assert.Equal(t, 0, c.cli)
	assert.Contains(t, out.String(), "GUI available")
}

func TestLaunchAutoFallsBackToCLI(t *testing.T) {
	l, c, out := newLauncher(errors.New("no display"), nil, 0)

	assert.Equal(t, 0, l.Launch(context.Background(), Options{}))
	assert.Equal(t, 0, c.gui)
	assert.Equal(t, 1, c.cli)
	assert.Contains(t, out.String(), "GUI not available")
}

func TestLaunchForcedGUIUnavailable(t *testing.T) {
	l, c, out := newLauncher(errors.New("built without GUI support"), nil, 0)

	assert.Equal(t, 1, l.Launch(context.Background(), Options{GUI: true}))
	assert.Equal(t, 0, c.gui)
	assert.Equal(t, 0, c.cli)
	assert.Contains(t, out.String(), "Install the OpenGL/X11 development libraries")
}

func TestLaunchForcedCLIPassesModeFlags(t *testing.T) {
	l, c, _ := newLauncher(nil, nil, 1)

	assert.Equal(t, 1, l.Launch(context.Background(), Options{CLI: true, DepsOnly: true}))
	assert.Equal(t, 0, c.probe)
	assert.Equal(t, [2]bool{false, true}, c.args)
}

func TestLaunchGUIFailureFallsBackToCLI(t *testing.T) {
	l, c, out := newLauncher(nil, errors.New("driver init failed"), 0)

	assert.Equal(t, 0, l.Launch(context.Background(), Options{GUI: true}))
	assert.Equal(t, 1, c.gui)
	assert.Equal(t, 1, c.cli)
	assert.Contains(t, out.String(), "Falling back to CLI installer")
}

func TestLaunchAutoFallsBackWhenWindowNeverStarts(t *testing.T) {
	errToolkitUnavailable := errors.New("GUI toolkit unavailable")
	startErr := fmt.Errorf("%w: the window never started", errToolkitUnavailable)
	l, c, out := newLauncher(nil, startErr, 0)

	assert.Equal(t, 0, l.Launch(context.Background(), Options{}))
	assert.Equal(t, 1, c.probe)
	assert.Equal(t, 1, c.gui)
	assert.Equal(t, 1, c.cli)
	assert.Equal(t, [2]bool{false, false}, c.args)
	assert.Contains(t, out.String(), "the window never started")
	assert.Contains(t, out.String(), "Falling back to CLI installer")
}
