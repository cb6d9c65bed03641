// Package python runs the user's Python interpreters to learn how they build
// their import path.
package python

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	probeTimeout = 10 * time.Second
	probeFile    = "homebrew-pth-probe.pth"
)

// Probe implements domain.PythonProbe. Interpreters are named like
// "python2.7" and looked up on PATH.
type Probe struct {
	prefix string
	logger *zap.Logger
}

// NewProbe returns a probe for site-packages under prefix.
func NewProbe(prefix string, logger *zap.Logger) *Probe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{prefix: prefix, logger: logger}
}

// ReadsBrewedPthFiles drops a marker .pth into the prefix's site-packages
// for the interpreter's version and checks that the interpreter executed it.
func (p *Probe) ReadsBrewedPthFiles(python string) bool {
	version := strings.TrimPrefix(filepath.Base(python), "python")
	site := filepath.Join(p.prefix, "lib", "python"+version, "site-packages")
	if info, err := os.Stat(site); err != nil || !info.IsDir() {
		return false
	}

	marker := filepath.Join(site, probeFile)
	if err := os.WriteFile(marker, []byte("import site; site.homebrew_was_here = True\n"), 0o644); err != nil {
		p.logger.Warn("could not write .pth probe", zap.String("path", marker), zap.Error(err))
		return false
	}
	defer os.Remove(marker)

	_, err := p.run(python, "import site; assert(site.homebrew_was_here)")
	return err == nil
}

// InSysPath reports whether path, after resolving symlinks, is on the
// interpreter's sys.path.
func (p *Probe) InSysPath(python, path string) bool {
	script := fmt.Sprintf(
		"import os, sys; [os.path.realpath(p) for p in sys.path].index(os.path.realpath(%q))", path)
	_, err := p.run(python, script)
	return err == nil
}

// UserSitePackages returns the interpreter's per-user site-packages, or ""
// when it cannot be determined.
func (p *Probe) UserSitePackages(python string) string {
	out, err := p.run(python, "import site; print(site.getusersitepackages())")
	if err != nil {
		p.logger.Debug("user site-packages unavailable", zap.String("python", python), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(out)
}

func (p *Probe) run(python, script string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, python, "-c", script)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}
