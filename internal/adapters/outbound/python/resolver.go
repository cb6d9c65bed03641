package python

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/openkeg/openkeg/internal/domain"
)

// Resolver implements domain.InterpreterResolver against the PATH the user
// had before the package manager adjusted it.
type Resolver struct {
	originalPath string
	name         string
}

func NewResolver(originalPath string) *Resolver {
	return &Resolver{originalPath: originalPath, name: "python"}
}

// ResolveDefaultInterpreter finds python on the original PATH, asks it for
// sys.executable and returns that path with symlinks resolved. Only the
// child process sees the original PATH.
func (r *Resolver) ResolveDefaultInterpreter() (string, error) {
	bin, err := r.lookPath()
	if err != nil {
		return "", &domain.ProbeFailure{Probe: "default python", Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-c", "import sys; print(sys.executable)")
	cmd.Env = append(os.Environ(), "PATH="+r.originalPath)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", &domain.ProbeFailure{Probe: "default python", Err: err}
	}

	exe := strings.TrimSpace(stdout.String())
	if exe == "" {
		return "", &domain.ProbeFailure{Probe: "default python", Err: errors.New("empty sys.executable")}
	}
	real, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", &domain.ProbeFailure{Probe: "default python", Err: err}
	}
	return real, nil
}

func (r *Resolver) lookPath() (string, error) {
	for _, dir := range filepath.SplitList(r.originalPath) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, r.name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%s not found on original PATH", r.name)
}
