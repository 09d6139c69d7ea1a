package repl

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader yields input lines without their terminator. It returns io.EOF once input ends.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

type pipeReader struct {
	r *bufio.Reader
}

// NewPipeReader reads lines from a pipe or file. Lines have no length limit, so an
// oversized line reaches the parser and is rejected there like any other bad input.
func NewPipeReader(r io.Reader) LineReader {
	return &pipeReader{r: bufio.NewReader(r)}
}

func (p *pipeReader) ReadLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	// a last line without a terminator still counts
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (p *pipeReader) Close() error { return nil }

type terminalReader struct {
	rl *readline.Instance
}

// NewTerminal reads lines from an interactive terminal with line editing and history.
func NewTerminal(prompt, historyFile string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &terminalReader{rl: rl}, nil
}

func (t *terminalReader) ReadLine() (string, error) {
	for {
		line, err := t.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C drops the current line
			continue
		}
		return line, err
	}
}

func (t *terminalReader) Close() error { return t.rl.Close() }

// IsTerminal reports whether fd is an interactive terminal.
func IsTerminal(fd uintptr) bool {
	return readline.IsTerminal(int(fd))
}
