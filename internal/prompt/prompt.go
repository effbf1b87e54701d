// Package prompt collects multi-line text bodies on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Terminator ends a text body when it is alone on a line.
const Terminator = "."

// Terminal reads text from In and writes prompts to Out. It is safe for
// sequential use only.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal wraps in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// RequestText prints title and reads lines until a line holding only "."
// or end of input. When initial is set and nothing is typed, initial is
// kept. An empty result reports ok=false.
func (t *Terminal) RequestText(title, initial string) (string, bool) {
	fmt.Fprintf(t.out, "%s (end with %q on its own line):\n", title, Terminator)
	if initial != "" {
		fmt.Fprintf(t.out, "current:\n%s\n", initial)
	}
	var lines []string
	for {
		line, err := t.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == Terminator && err == nil {
			break
		}
		if err != nil {
			if line != "" && line != Terminator {
				lines = append(lines, line)
			}
			if !errors.Is(err, io.EOF) {
				return "", false
			}
			break
		}
		lines = append(lines, line)
	}
	body := strings.Join(lines, "\n")
	if body == "" {
		body = initial
	}
	return body, body != ""
}
