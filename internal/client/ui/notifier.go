package ui

import (
	"fmt"
	"io"
	"sync"
)

// Notifier prints toasts to a writer.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier creates a notifier writing to out.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Success prints a green toast.
func (n *Notifier) Success(message string) {
	n.print(Good.Render(IconDone + " " + message))
}

// Error prints a red toast.
func (n *Notifier) Error(message string) {
	n.print(Bad.Render(IconError + " " + message))
}

// Info prints a neutral toast.
func (n *Notifier) Info(message string) {
	n.print(H2.Render(IconInfo + " " + message))
}

func (n *Notifier) print(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, line)
}
