// Package notify delivers user-facing outcome messages for mutations.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier reports mutation outcomes to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console writes outcomes to a terminal.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "OK: %s\n", msg)
}

func (c *Console) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "ERROR: %s\n", msg)
}

// Discard swallows notifications. Useful in tests.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
