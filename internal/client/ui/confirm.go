package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks yes/no questions on a terminal. Anything but y or yes,
// including EOF, declines.
type Confirmer struct {
	in     *bufio.Reader
	out    io.Writer
	assume bool
}

// NewConfirmer reads answers from in and writes prompts to out.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: bufio.NewReader(in), out: out}
}

// AssumeYes makes every prompt accept without reading input.
func (c *Confirmer) AssumeYes() *Confirmer {
	c.assume = true
	return c
}

// Confirm prints prompt followed by [y/N] and reports the answer.
func (c *Confirmer) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s %s ", Warn.Render(IconWarn+" "+prompt), Muted.Render("[y/N]"))
	if c.assume {
		fmt.Fprintln(c.out, "y")
		return true
	}

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
