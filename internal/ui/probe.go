//go:build !nogui

package ui

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Available 尝试初始化 fyne 使用的 glfw 窗口系统，成功后立即释放。
// 必须在主协程上调用，fyne 在 init 中已将其锁定到主线程。
func Available() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrToolkitUnavailable, err)
	}
	glfw.Terminate()
	return nil
}
