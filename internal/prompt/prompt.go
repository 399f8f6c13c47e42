// Package prompt implements interactive selection on a terminal. The
// resolver blocks on it only when a video exposes more than one caption
// track.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Console prompts for a numeric choice on an interactive terminal.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole builds a prompter over the given streams. Nil streams default
// to stdin/stdout.
func NewConsole(in io.Reader, out io.Writer) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Console{in: bufio.NewReader(in), out: out}
}

// Select presents choices numbered from 1 and blocks until the user picks
// one, returning its zero-based index. Invalid input re-prompts; a closed
// input stream returns an error.
func (c *Console) Select(choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("no choices to select from")
	}

	for i, choice := range choices {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, choice)
	}

	for {
		fmt.Fprintf(c.out, "Select [1-%d]: ", len(choices))
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("read selection: %w", err)
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
		fmt.Fprintln(c.out, "Invalid selection")
		if err != nil {
			return 0, fmt.Errorf("read selection: %w", err)
		}
	}
}
