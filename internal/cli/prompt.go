package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LinePrompter 在终端上询问 (y/N)，读到 EOF 视为否
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s (y/N): ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
