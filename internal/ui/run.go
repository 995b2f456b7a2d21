//go:build !nogui

package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"venv-wizard/assets"
	"venv-wizard/internal/installer"
)

var AppIcon = fyne.NewStaticResource("icon.svg", assets.IconSVG)

// Run 打开安装向导窗口并阻塞直到窗口关闭
func Run(ctx context.Context, cfg installer.Config, logger *slog.Logger) (err error) {
	if err := Available(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrToolkitUnavailable, r)
		}
	}()

	var watch startWatch
	myApp := app.New()
	myApp.Lifecycle().SetOnStarted(watch.Started)
	myApp.SetIcon(AppIcon)
	myApp.Settings().SetTheme(&WizardTheme{})

	mainWindow := myApp.NewWindow("Environment Setup Wizard")
	mainWindow.Resize(DefaultWindowSize)
	mainWindow.SetFixedSize(true)
	mainWindow.CenterOnScreen()

	uiManager := NewManager(ctx, mainWindow, cfg, logger)
	mainWindow.SetContent(uiManager.CreateMainContent())
	mainWindow.SetCloseIntercept(uiManager.onClose)

	uiManager.startPolling()
	defer uiManager.stopPolling()

	mainWindow.ShowAndRun()
	return watch.Err()
}
