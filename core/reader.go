package core

import (
	"bufio"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"golang.org/x/term"
)

// LineReader yields lines of input without their trailing newline.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewInteractiveReader reads from the terminal with line editing and
// history.
func NewInteractiveReader(historyFile string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, err
	}
	return &readlineReader{rl: rl}, nil
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	return r.rl.Readline()
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

// NewBatchReader reads lines from r without prompting.
func NewBatchReader(r io.Reader) LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &batchReader{scanner: scanner, closer: r}
}

type batchReader struct {
	scanner *bufio.Scanner
	closer  io.Reader
}

func (b *batchReader) ReadLine(string) (string, error) {
	if b.scanner.Scan() {
		return b.scanner.Text(), nil
	}
	if err := b.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (b *batchReader) Close() error {
	if c, ok := b.closer.(io.Closer); ok && b.closer != os.Stdin {
		return c.Close()
	}
	return nil
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
