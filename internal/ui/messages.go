package ui

import (
	"fmt"

	"venv-wizard/internal/installer"
)

type MessageKind int

const (
	MessageLog MessageKind = iota
	MessageProgress
	MessageSuccess
	MessageError
)

func (k MessageKind) String() string {
	switch k {
	case MessageLog:
		return "log"
	case MessageProgress:
		return "progress"
	case MessageSuccess:
		return "success"
	case MessageError:
		return "error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Message 是后台安装协程发往界面的一条消息
type Message struct {
	Kind MessageKind
	Text string
}

func (m Message) Terminal() bool {
	return m.Kind == MessageSuccess || m.Kind == MessageError
}

const queueSize = 256

func NewQueue() chan Message {
	return make(chan Message, queueSize)
}

// QueueReporter 把安装器的输出转换为消息，仅写入队列，不触碰任何界面状态
type QueueReporter struct {
	queue chan<- Message
}

var _ installer.Reporter = (*QueueReporter)(nil)

func NewQueueReporter(queue chan<- Message) *QueueReporter {
	return &QueueReporter{queue: queue}
}

func (r *QueueReporter) Step(msg string) {
	r.queue <- Message{Kind: MessageProgress, Text: msg}
	r.queue <- Message{Kind: MessageLog, Text: msg}
}

func (r *QueueReporter) Success(msg string) { r.log("✓ " + msg) }
func (r *QueueReporter) Warn(msg string)    { r.log("⚠ " + msg) }
func (r *QueueReporter) Fail(msg string)    { r.log("✗ " + msg) }
func (r *QueueReporter) Info(msg string)    { r.log(msg) }

func (r *QueueReporter) log(text string) {
	r.queue <- Message{Kind: MessageLog, Text: text}
}
