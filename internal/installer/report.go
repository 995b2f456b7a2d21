package installer

// Reporter 接收安装过程中面向用户的状态输出
type Reporter interface {
	// Step announces a phase, e.g. "Checking Python version...".
	Step(msg string)
	Success(msg string)
	Warn(msg string)
	Fail(msg string)
	// Info carries plain text such as streamed installer output.
	Info(msg string)
}

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(question string) bool
}

// FixedAnswer 总是返回同一个答案的 Prompter
type FixedAnswer bool

func (a FixedAnswer) Confirm(string) bool { return bool(a) }

type discardReporter struct{}

func (discardReporter) Step(string)    {}
func (discardReporter) Success(string) {}
func (discardReporter) Warn(string)    {}
func (discardReporter) Fail(string)    {}
func (discardReporter) Info(string)    {}
