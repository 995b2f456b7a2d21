package ui

import (
	"strings"
)

// View 是 Presenter 操作的界面部件，所有方法都只在界面线程上调用
type View interface {
	AppendLog(line string)
	SetStatus(text string)
	// Succeeded stops the progress indicator, fills it and re-enables the
	// action button as "Reinstall".
	Succeeded(text string)
	// Failed stops the progress indicator and re-enables the action button.
	Failed(text string)
}

const blockRule = 68

// Presenter drains the worker queue on the UI thread and applies each message
// to the view in emission order. It is the only writer of view state.
type Presenter struct {
	queue     <-chan Message
	view      View
	nextSteps func() []string
	running   bool
}

func NewPresenter(queue <-chan Message, view View, nextSteps func() []string) *Presenter {
	return &Presenter{queue: queue, view: view, nextSteps: nextSteps}
}

// Start 标记一次安装开始；已有安装在运行时返回 false
func (p *Presenter) Start() bool {
	if p.running {
		return false
	}
	p.running = true
	return true
}

func (p *Presenter) Running() bool { return p.running }

// Drain 处理队列中所有已到达的消息，不会阻塞
func (p *Presenter) Drain() int {
	n := 0
	for {
		select {
		case msg, ok := <-p.queue:
			if !ok {
				return n
			}
			p.apply(msg)
			n++
		default:
			return n
		}
	}
}

func (p *Presenter) apply(msg Message) {
	switch msg.Kind {
	case MessageLog:
		p.view.AppendLog(msg.Text)
	case MessageProgress:
		p.view.SetStatus(msg.Text)
	case MessageSuccess:
		p.running = false
		p.view.SetStatus(msg.Text)
		p.appendBlock("✓ Installation Complete!")
		p.view.AppendLog("Next steps:")
		p.view.AppendLog("")
		if p.nextSteps != nil {
			for _, line := range p.nextSteps() {
				p.view.AppendLog(line)
			}
		}
		p.view.Succeeded(msg.Text)
	case MessageError:
		p.running = false
		p.view.SetStatus("Installation failed")
		p.appendBlock("✗ Error: " + msg.Text)
		p.view.Failed(msg.Text)
	}
}

func (p *Presenter) appendBlock(title string) {
	rule := strings.Repeat("=", blockRule)
	p.view.AppendLog("")
	p.view.AppendLog(rule)
	p.view.AppendLog(title)
	p.view.AppendLog(rule)
	p.view.AppendLog("")
}
