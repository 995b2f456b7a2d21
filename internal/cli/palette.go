package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"venv-wizard/internal/platform"
)

// Palette 终端颜色配置，进程启动时计算一次后只读传递
type Palette struct {
	profile termenv.Profile

	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	heading lipgloss.Style
	command lipgloss.Style
	bold    lipgloss.Style
}

// DetectPalette picks the colour profile for w. On Windows, colours stay off
// unless ANSICON is present or virtual terminal processing can be enabled.
// The returned func restores the console mode and is never nil.
func DetectPalette(w io.Writer, goos string) (Palette, func() error) {
	restore := func() error { return nil }

	out := termenv.NewOutput(w)
	profile := out.EnvColorProfile()

	if goos == platform.Windows && profile != termenv.Ascii && os.Getenv("ANSICON") == "" {
		undo, err := termenv.EnableVirtualTerminalProcessing(out)
		if err != nil {
			profile = termenv.Ascii
		} else if undo != nil {
			restore = undo
		}
	}
	return NewPalette(profile), restore
}

func NewPalette(profile termenv.Profile) Palette {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	return Palette{
		profile: profile,
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")),
		heading: r.NewStyle().Foreground(lipgloss.Color("4")),
		command: r.NewStyle().Foreground(lipgloss.Color("6")),
		bold:    r.NewStyle().Bold(true),
	}
}

func (p Palette) Enabled() bool { return p.profile != termenv.Ascii }

func (p Palette) OK(s string) string      { return p.ok.Render(s) }
func (p Palette) Warn(s string) string    { return p.warn.Render(s) }
func (p Palette) Fail(s string) string    { return p.fail.Render(s) }
func (p Palette) Heading(s string) string { return p.heading.Render(s) }
func (p Palette) Command(s string) string { return p.command.Render(s) }
func (p Palette) Bold(s string) string    { return p.bold.Render(s) }
