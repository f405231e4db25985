// Package prompt reads line-oriented answers from standard input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned when input ends before an answer was given.
var ErrInputClosed = errors.New("input closed before an answer was given")

// Prompter writes a question and reads the answer line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading answers from in and writing questions
// to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask writes question as-is (no newline is added) and returns the next
// input line without its line terminator. A final line lacking a newline
// is still returned; EOF with nothing read yields ErrInputClosed.
func (p *Prompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
		} else {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}
