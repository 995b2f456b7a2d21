package ui

import (
	"errors"
	"fmt"
	"sync/atomic"

	"venv-wizard/internal/platform"
)

var ErrToolkitUnavailable = errors.New("GUI toolkit unavailable")

// startWatch 记录窗口是否真正启动过；驱动初始化失败时事件循环会直接返回
type startWatch struct {
	started atomic.Bool
}

func (w *startWatch) Started() { w.started.Store(true) }

// Err 在事件循环结束后调用，窗口从未启动时返回 ErrToolkitUnavailable
func (w *startWatch) Err() error {
	if w.started.Load() {
		return nil
	}
	return fmt.Errorf("%w: the window never started", ErrToolkitUnavailable)
}

// InstallHint 给出让图形界面可用的操作建议
func InstallHint(goos string) string {
	switch goos {
	case platform.Linux:
		return `Install the graphics libraries and run from a desktop session:
  Ubuntu/Debian: sudo apt-get install libgl1 libx11-6 libxrandr2 libxcursor1 libxinerama1 libxi6
  Fedora: sudo dnf install mesa-libGL libX11 libXrandr libXcursor libXinerama libXi
Builds made with -tags nogui never include the GUI; rebuild without that tag.`
	case platform.Windows, platform.MacOS:
		return "The GUI is included by default; rebuild without -tags nogui."
	}
	return "Run from a desktop session with X11 or Wayland, or use --cli."
}
