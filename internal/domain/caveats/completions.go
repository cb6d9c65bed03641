package caveats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/openkeg/openkeg/internal/domain/inspect"
)

// completions tells the user where sh's completions and functions went. It
// says nothing if sh is not installed on the host.
func (r *run) completions(sh domain.Shell) (string, error) {
	if r.keg == nil {
		return "", nil
	}
	layout, ok := domain.LayoutFor(sh)
	if !ok || !r.which(layout.Binary) {
		return "", nil
	}

	insp := inspect.New(r.keg)
	completions, err := insp.CompletionInstalled(sh)
	if err != nil {
		return "", err
	}
	functions, err := insp.FunctionsInstalled(sh)
	if err != nil {
		return "", err
	}
	if !completions && !functions {
		return "", nil
	}

	var installed, dirs []string
	if completions {
		installed = append(installed, "completions")
		dirs = append(dirs, layout.CompletionDir)
	}
	if functions {
		installed = append(installed, "functions")
		if layout.FunctionDir != layout.CompletionDir || !completions {
			dirs = append(dirs, layout.FunctionDir)
		}
	}

	var b strings.Builder
	if sh == domain.ShellBash {
		b.WriteString("Bash completion has been installed to:\n")
	} else {
		fmt.Fprintf(&b, "%s %s have been installed to:\n", sh, strings.Join(installed, " and "))
	}
	for _, dir := range dirs {
		fmt.Fprintf(&b, "  %s\n", filepath.Join(r.deps.Config.Prefix, dir))
	}
	return b.String(), nil
}
