// Package system answers questions about the host through subprocesses and
// the environment.
package system

import (
	"context"
	"os"
	"os/exec"
	"time"
)

// probeTimeout bounds every subprocess started by this package.
const probeTimeout = 10 * time.Second

// Locator implements domain.ExecutableLocator with exec.LookPath.
type Locator struct{}

func NewLocator() *Locator {
	return &Locator{}
}

func (l *Locator) Which(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// Launchctl implements domain.ServiceManager by asking launchd.
type Launchctl struct {
	bin string
}

func NewLaunchctl() *Launchctl {
	return &Launchctl{bin: "/bin/launchctl"}
}

// IsLoaded reports whether launchd knows the label. Any failure, including
// a missing launchctl, counts as not loaded.
func (l *Launchctl) IsLoaded(label string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, l.bin, "list", label).Run() == nil
}

// Tmux implements domain.MultiplexerDetector. Under tmux without a user
// namespace wrapper the clipboard bridge fails, and so do launchctl calls.
type Tmux struct {
	getenv    func(string) string
	clipboard string
}

func NewTmux() *Tmux {
	return &Tmux{getenv: os.Getenv, clipboard: "/usr/bin/pbpaste"}
}

// NewTmuxWith is used in tests.
func NewTmuxWith(getenv func(string) string, clipboard string) *Tmux {
	return &Tmux{getenv: getenv, clipboard: clipboard}
}

func (t *Tmux) BreaksServices() bool {
	if t.getenv("TMUX") == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, t.clipboard).Run() != nil
}
