package ui

import "fmt"

type HelpPage struct {
	Title   string
	Content string
}

// Pager 帮助对话框的翻页状态
type Pager struct {
	pages   []HelpPage
	current int
}

func NewPager(pages []HelpPage) *Pager {
	return &Pager{pages: pages}
}

func (p *Pager) Page() HelpPage { return p.pages[p.current] }

func (p *Pager) Next() bool {
	if p.current >= len(p.pages)-1 {
		return false
	}
	p.current++
	return true
}

func (p *Pager) Prev() bool {
	if p.current == 0 {
		return false
	}
	p.current--
	return true
}

func (p *Pager) HasPrev() bool { return p.current > 0 }
func (p *Pager) HasNext() bool { return p.current < len(p.pages)-1 }

func (p *Pager) Label() string {
	return fmt.Sprintf("%d / %d", p.current+1, len(p.pages))
}

// HelpPages 生成帮助内容，环境目录与清单文件名来自当前配置
func HelpPages(envDir, manifest string) []HelpPage {
	return []HelpPage{
		{
			Title: "Welcome",
			Content: `This wizard prepares an isolated Python environment for the project.

It will:
• check that a supported Python interpreter is installed
• create the virtual environment
• upgrade pip and install the project's dependencies
• show the commands to activate the environment

Click "Next" to learn about the installation modes.`,
		},
		{
			Title: "Installation modes",
			Content: fmt.Sprintf(`The graphical installer always runs the full installation.

The command-line installer also supports:
• --venv-only   only create the virtual environment
• --deps-only   only install dependencies into an existing environment

Run the launcher with --cli to use them, for example:
  wizard --cli --deps-only

The environment lives in %s.`, envDir),
		},
		{
			Title: "Existing environments",
			Content: `If the environment directory already exists it is reused as-is.

Tick "Recreate existing environment" before clicking Install to delete it
and build a fresh one. Recreating removes every package installed in it.`,
		},
		{
			Title: "Troubleshooting",
			Content: fmt.Sprintf(`• "Python 3.8+ required": install a newer Python and make sure it is on PATH.
• Environment creation failed: on Debian/Ubuntu install the python3-venv package.
• Dependency installation failed: check network access and the versions pinned in %s.
• A missing %s is not an error; only pip itself is upgraded.

The log view shows the complete output of every command.`, manifest, manifest),
		},
	}
}
