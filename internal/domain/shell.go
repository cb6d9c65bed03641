package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Shell identifies a user shell.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
	ShellKsh  Shell = "ksh"
	ShellSh   Shell = "sh"
	ShellCsh  Shell = "csh"
	ShellTcsh Shell = "tcsh"
)

// CompletionShells are the shells completion notices are produced for, in
// the order they appear in the caveats.
var CompletionShells = []Shell{ShellBash, ShellZsh, ShellFish}

// ShellLayout says where a shell's completions and functions live, relative
// to a keg or to the prefix. An empty directory means the shell has none.
type ShellLayout struct {
	Binary        string
	CompletionDir string
	FunctionDir   string
}

var shellLayouts = map[Shell]ShellLayout{
	ShellBash: {Binary: "bash", CompletionDir: "etc/bash_completion.d"},
	ShellZsh:  {Binary: "zsh", CompletionDir: "share/zsh/site-functions", FunctionDir: "share/zsh/site-functions"},
	ShellFish: {Binary: "fish", CompletionDir: "share/fish/vendor_completions.d", FunctionDir: "share/fish/vendor_functions.d"},
}

// LayoutFor returns the completion layout of sh; ok is false for shells
// that have no completion support.
func LayoutFor(sh Shell) (ShellLayout, bool) {
	l, ok := shellLayouts[sh]
	return l, ok
}

var knownShells = map[Shell]string{
	ShellBash: "~/.bash_profile",
	ShellSh:   "~/.bash_profile",
	ShellZsh:  "~/.zshrc",
	ShellKsh:  "~/.kshrc",
	ShellCsh:  "~/.cshrc",
	ShellTcsh: "~/.tcshrc",
	ShellFish: "~/.config/fish/config.fish",
}

// ParseShell maps a shell path such as /bin/zsh to a Shell. Unknown or empty
// input yields "".
func ParseShell(path string) Shell {
	sh := Shell(filepath.Base(strings.TrimSpace(path)))
	if _, ok := knownShells[sh]; ok {
		return sh
	}
	return ""
}

// Profile is the startup file the shell reads for an interactive login.
func (s Shell) Profile() string {
	if p, ok := knownShells[s]; ok {
		return p
	}
	return knownShells[ShellBash]
}

// PrependPathCommand is the one-liner that puts path first in the user's
// PATH on every new shell.
func (s Shell) PrependPathCommand(path string) string {
	switch s {
	case ShellCsh, ShellTcsh:
		return fmt.Sprintf("echo 'setenv PATH %s:$PATH' >> %s", cshQuote(path), s.Profile())
	case ShellFish:
		return fmt.Sprintf("echo 'set -g fish_user_paths \"%s\" $fish_user_paths' >> %s", shQuote(path), s.Profile())
	default:
		return fmt.Sprintf("echo 'export PATH=\"%s:$PATH\"' >> %s", shQuote(path), s.Profile())
	}
}

var unsafeShellChars = regexp.MustCompile(`([^A-Za-z0-9_\-.,:/@\n])`)

func shQuote(s string) string {
	if s == "" {
		return "''"
	}
	s = unsafeShellChars.ReplaceAllString(s, `\$1`)
	return strings.ReplaceAll(s, "\n", "'\n'")
}

func cshQuote(s string) string {
	if s == "" {
		return "''"
	}
	s = unsafeShellChars.ReplaceAllString(s, `\$1`)
	return strings.ReplaceAll(s, "\n", "'\\\n'")
}
