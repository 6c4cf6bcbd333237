package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
)

const msgSessionEnded = "Session expired. Please log in again."

// consoleNotifier prints toasts to the terminal.
type consoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleNotifier(w io.Writer) *consoleNotifier {
	return &consoleNotifier{w: w}
}

func (n *consoleNotifier) Success(_ context.Context, msg string) {
	n.print("ok", msg)
}

func (n *consoleNotifier) Failure(_ context.Context, msg string) {
	n.print("error", msg)
}

func (n *consoleNotifier) print(kind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", kind, msg)
}
