package ui

import (
	"context"
	"fmt"

	"venv-wizard/internal/installer"
)

// Job is the part of the installer a worker drives.
type Job interface {
	Run(ctx context.Context, mode installer.Mode) installer.Outcome
}

// Work 在后台协程中执行一次完整安装，结束时必定发送且只发送一条 Success 或 Error 消息
func Work(ctx context.Context, job Job, queue chan<- Message) {
	terminal := Message{Kind: MessageError, Text: "Installation failed"}
	defer func() {
		if r := recover(); r != nil {
			terminal = Message{Kind: MessageError, Text: fmt.Sprintf("Installation failed: %v", r)}
		}
		queue <- terminal
	}()

	queue <- Message{Kind: MessageLog, Text: "Starting installation..."}
	queue <- Message{Kind: MessageLog, Text: ""}

	outcome := job.Run(ctx, installer.ModeFull)
	if outcome.OK() {
		terminal = Message{Kind: MessageSuccess, Text: outcome.Message}
		return
	}
	terminal = Message{Kind: MessageError, Text: outcome.Message}
}
