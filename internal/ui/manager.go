//go:build !nogui

package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"venv-wizard/internal/installer"
	"venv-wizard/internal/platform"
)

const pollInterval = 100 * time.Millisecond

type Manager struct {
	ctx    context.Context
	window fyne.Window
	cfg    installer.Config
	logger *slog.Logger

	queue     chan Message
	presenter *Presenter
	current   *installer.Installer
	stop      chan struct{}
	logRows   int

	// UI 组件
	progressBar   *widget.ProgressBar
	spinner       *widget.ProgressBarInfinite
	statusLabel   *widget.Label
	logsDisplay   *widget.Entry
	installButton *widget.Button
	closeButton   *widget.Button
	helpButton    *widget.Button
	recreateCheck *widget.Check
}

var _ View = (*Manager)(nil)

func NewManager(ctx context.Context, window fyne.Window, cfg installer.Config, logger *slog.Logger) *Manager {
	m := &Manager{
		ctx:    ctx,
		window: window,
		cfg:    cfg,
		logger: logger,
		queue:  NewQueue(),
		stop:   make(chan struct{}),
	}
	m.current = m.newInstaller(false)
	m.presenter = NewPresenter(m.queue, m, func() []string { return m.current.NextSteps() })
	return m
}

func (m *Manager) newInstaller(recreate bool) *installer.Installer {
	return installer.New(m.cfg,
		installer.WithLogger(m.logger),
		installer.WithReporter(NewQueueReporter(m.queue)),
		installer.WithPrompter(installer.FixedAnswer(recreate)),
	)
}

func (m *Manager) CreateMainContent() fyne.CanvasObject {
	title := canvas.NewText("Environment Setup", color.White)
	title.TextSize = 24
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	subtitle := canvas.NewText("Cross-Platform Installation Wizard", color.RGBA{R: 219, G: 234, B: 254, A: 255})
	subtitle.TextSize = 13
	subtitle.Alignment = fyne.TextAlignCenter

	icon := canvas.NewImageFromResource(AppIcon)
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(48, 48))

	header := container.NewStack(
		canvas.NewRectangle(BrandColor),
		container.NewPadded(container.NewBorder(nil, nil, icon, nil, container.NewVBox(title, subtitle))),
	)

	paths := m.current.Paths()
	info := widget.NewCard("", "", container.NewVBox(
		widget.NewLabel(fmt.Sprintf("Platform: %s", platform.Name(m.cfg.OS))),
		widget.NewLabel(fmt.Sprintf("Interpreter: %s", paths.Interpreter)),
		widget.NewLabel(fmt.Sprintf("Environment: %s", paths.EnvDir)),
	))

	m.statusLabel = widget.NewLabel("Ready to install")
	m.progressBar = widget.NewProgressBar()
	m.progressBar.Hide()
	m.spinner = widget.NewProgressBarInfinite()
	m.spinner.Hide()

	m.logsDisplay = widget.NewMultiLineEntry()
	m.logsDisplay.Disable()
	m.logsDisplay.TextStyle = fyne.TextStyle{Monospace: true}
	logScroll := container.NewScroll(m.logsDisplay)
	logScroll.SetMinSize(fyne.NewSize(0, 240))

	m.recreateCheck = widget.NewCheck("Recreate existing environment", nil)

	m.installButton = widget.NewButton("Install", m.onInstallClick)
	m.installButton.Importance = widget.HighImportance
	m.helpButton = widget.NewButton("Help", m.showHelp)
	m.closeButton = widget.NewButton("Close", m.onClose)

	buttons := container.NewHBox(
		m.installButton,
		m.helpButton,
		layout.NewSpacer(),
		m.closeButton,
	)

	progress := container.NewVBox(m.statusLabel, container.NewStack(m.spinner, m.progressBar))
	logs := container.NewBorder(widget.NewLabelWithStyle("Installation Log:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), nil, nil, nil, logScroll)

	m.writeWelcome()

	body := container.NewBorder(
		container.NewVBox(info, progress),
		container.NewVBox(m.recreateCheck, buttons),
		nil, nil,
		logs,
	)
	return container.NewBorder(header, nil, nil, nil, container.NewPadded(body))
}

func (m *Manager) writeWelcome() {
	m.AppendLog("Welcome to the Environment Setup Wizard!")
	m.AppendLog(fmt.Sprintf("Detected platform: %s", platform.Name(m.cfg.OS)))
	m.AppendLog(fmt.Sprintf("Interpreter: %s (minimum %s)", m.current.Paths().Interpreter, m.current.Config().MinVersion))
	m.AppendLog("")
	m.AppendLog("Click 'Install' to begin setup.")
}

func (m *Manager) onInstallClick() {
	if !m.presenter.Start() {
		return
	}

	// 禁用安装按钮，防止重复启动
	m.installButton.Disable()
	m.logRows = 0
	m.logsDisplay.SetText("")
	m.progressBar.Hide()
	m.spinner.Show()
	m.spinner.Start()

	m.current = m.newInstaller(m.recreateCheck.Checked)
	go Work(m.ctx, m.current, m.queue)
}

// startPolling 每 100ms 在界面线程上处理一次消息队列；ctx 取消时关闭窗口
func (m *Manager) startPolling() {
	ticker := time.NewTicker(pollInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-m.stop:
				return
			case <-m.ctx.Done():
				fyne.Do(m.window.Close)
				return
			case <-ticker.C:
				fyne.Do(func() { m.presenter.Drain() })
			}
		}
	}()
}

func (m *Manager) stopPolling() {
	close(m.stop)
}

func (m *Manager) AppendLog(line string) {
	if m.logRows > 0 {
		line = "\n" + line
	}
	m.logsDisplay.Append(line)
	m.logRows++

	// 滚动到底部
	m.logsDisplay.CursorRow = m.logRows
}

func (m *Manager) SetStatus(text string) {
	m.statusLabel.SetText(text)
}

func (m *Manager) Succeeded(string) {
	m.spinner.Stop()
	m.spinner.Hide()
	m.progressBar.Show()
	m.progressBar.SetValue(1)

	dialog.ShowInformation("Installation Complete",
		"The environment has been installed successfully!\n\nSee the log for next steps.",
		m.window)

	m.installButton.SetText("Reinstall")
	m.installButton.Enable()
}

func (m *Manager) Failed(text string) {
	m.spinner.Stop()
	m.spinner.Hide()

	dialog.ShowError(errors.New("An error occurred during installation:\n\n"+text+"\n\nPlease check the log for details."), m.window)

	m.installButton.Enable()
}

func (m *Manager) showHelp() {
	cfg := m.current.Config()
	NewTutorial(m.window, HelpPages(m.current.Paths().EnvDir, cfg.Manifest)).Show()
}

// onClose 安装进行中时先确认再关闭窗口
func (m *Manager) onClose() {
	if !m.presenter.Running() {
		m.window.Close()
		return
	}
	dialog.ShowConfirm("Installation In Progress",
		"Installation is currently running. Are you sure you want to exit?",
		func(ok bool) {
			if ok {
				m.window.Close()
			}
		}, m.window)
}
