//go:build !nogui

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Tutorial 分页显示的帮助对话框
type Tutorial struct {
	parent fyne.Window
	pager  *Pager
}

func NewTutorial(parent fyne.Window, pages []HelpPage) *Tutorial {
	return &Tutorial{parent: parent, pager: NewPager(pages)}
}

func (t *Tutorial) Show() {
	d := dialog.NewCustom("Help", "Close", t.createContent(), t.parent)
	d.Resize(fyne.NewSize(560, 380))
	d.Show()
}

func (t *Tutorial) createContent() fyne.CanvasObject {
	titleLabel := widget.NewLabelWithStyle(t.pager.Page().Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	contentLabel := widget.NewLabel(t.pager.Page().Content)
	contentLabel.Wrapping = fyne.TextWrapWord

	contentScroll := container.NewScroll(contentLabel)
	contentScroll.SetMinSize(fyne.NewSize(0, 240))

	pageLabel := widget.NewLabel(t.pager.Label())
	pageLabel.Alignment = fyne.TextAlignCenter

	var prevButton, nextButton *widget.Button
	refresh := func() {
		titleLabel.SetText(t.pager.Page().Title)
		contentLabel.SetText(t.pager.Page().Content)
		pageLabel.SetText(t.pager.Label())
		setEnabled(prevButton, t.pager.HasPrev())
		setEnabled(nextButton, t.pager.HasNext())
	}

	prevButton = widget.NewButton("Previous", func() {
		if t.pager.Prev() {
			refresh()
		}
	})
	nextButton = widget.NewButton("Next", func() {
		if t.pager.Next() {
			refresh()
		}
	})
	refresh()

	nav := container.NewBorder(nil, nil, prevButton, nextButton, pageLabel)
	return container.NewBorder(titleLabel, nav, nil, nil, contentScroll)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
		return
	}
	b.Disable()
}
