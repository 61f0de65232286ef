package app

import (
	"fmt"
	"io"
	"sync"
)

// TerminalNavigator tells a CLI user to log in again once their session
// can no longer be refreshed. It prints the hint at most once per process.
type TerminalNavigator struct {
	out     io.Writer
	current string

	mu         sync.Mutex
	redirected string
}

// NewTerminalNavigator reports current as the active "page", normally the
// command path.
func NewTerminalNavigator(out io.Writer, current string) *TerminalNavigator {
	return &TerminalNavigator{out: out, current: current}
}

func (n *TerminalNavigator) CurrentPath() string { return n.current }

func (n *TerminalNavigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.redirected != "" {
		return
	}
	n.redirected = path
	fmt.Fprintln(n.out, "Session expired. Run `cmsadmin login` to sign in again.")
}

// Redirected returns the path the client asked to navigate to, if any.
func (n *TerminalNavigator) Redirected() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.redirected, n.redirected != ""
}
