// Package console writes the colour-coded, human-facing messages of the
// bootstrap tool: red errors and yellow warnings on the error stream, green
// success notices on the output stream.
//
// Colour rendering is delegated to github.com/gookit/color, which detects
// terminal support and honours NO_COLOR.
package console

import (
	"fmt"
	"io"

	"github.com/gookit/color"
)

// Console holds the two streams user-facing messages are written to.
type Console struct {
	Out io.Writer
	Err io.Writer
}

// New creates a Console writing to out and errOut.
func New(out, errOut io.Writer) *Console {
	return &Console{Out: out, Err: errOut}
}

// DisableColor turns off ANSI colour output for the whole process.
func DisableColor() {
	color.Disable()
}

// Error prints msg in red on the error stream.
func (c *Console) Error(msg string) {
	_, _ = fmt.Fprintln(c.Err, color.Red.Sprint(msg))
}

// Errorf formats and prints an error message in red on the error stream.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.Error(fmt.Sprintf(format, args...))
}

// Warnf formats and prints a warning in yellow on the error stream.
func (c *Console) Warnf(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(c.Err, color.Yellow.Sprint(fmt.Sprintf(format, args...)))
}

// Successf formats and prints a success notice in green on the output stream.
func (c *Console) Successf(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(c.Out, color.Green.Sprint(fmt.Sprintf(format, args...)))
}
