// Package caveats assembles the advisory text shown after a formula is
// installed.
package caveats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/openkeg/openkeg/internal/domain/inspect"
)

// Deps are the collaborators the caveats consult.
type Deps struct {
	Config      domain.Config
	Receipts    domain.ReceiptReader
	Executables domain.ExecutableLocator
	Services    domain.ServiceManager
	Multiplexer domain.MultiplexerDetector
	Python      domain.PythonProbe
	Logger      *zap.Logger
}

// Caveats produces the advisory text for one formula.
type Caveats struct {
	f    *domain.Formula
	deps Deps
}

func New(f *domain.Formula, deps Deps) *Caveats {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Caveats{f: f, deps: deps}
}

// Formula returns the formula the caveats describe.
func (c *Caveats) Formula() *domain.Formula { return c.f }

// run carries the keg resolved for a single Text call.
type run struct {
	*Caveats
	keg *domain.Keg
}

// Text returns the caveats, fragments separated by a blank line, or "" when
// there is nothing to say.
func (c *Caveats) Text() (string, error) {
	keg, ok := domain.ResolveKeg(c.f.KegCandidates())
	if !ok {
		c.deps.Logger.Debug("no installed keg found", zap.String("formula", c.f.Name))
	}
	r := &run{Caveats: c, keg: keg}

	fragments := []func() (string, error){r.declared, r.kegOnly}
	for _, sh := range domain.CompletionShells {
		fragments = append(fragments, func() (string, error) { return r.completions(sh) })
	}
	fragments = append(fragments, r.service, r.python, r.elisp)

	var parts []string
	for _, fragment := range fragments {
		s, err := fragment()
		if err != nil {
			return "", err
		}
		s = strings.TrimRight(s, " \t\r\n")
		if strings.TrimSpace(s) == "" {
			continue
		}
		parts = append(parts, s+"\n")
	}
	return strings.Join(parts, "\n"), nil
}

// Empty reports whether the formula has no caveats at all.
func (c *Caveats) Empty() (bool, error) {
	s, err := c.Text()
	if err != nil {
		return false, err
	}
	return s == "", nil
}

// declared renders the formula's own caveats against the build options the
// keg was actually installed with.
func (r *run) declared() (string, error) {
	build, err := r.installedBuild()
	if err != nil {
		return "", err
	}
	s, err := withBuild(r.f, build, r.f.Caveats)
	if err != nil {
		return "", fmt.Errorf("rendering caveats for %s: %w", r.f.Name, err)
	}
	return s, nil
}

// installedBuild reads the install receipt of the linked, then the current,
// keg; without one the formula's own options stand.
func (r *run) installedBuild() (domain.BuildOptions, error) {
	if r.deps.Receipts == nil {
		return r.f.Build, nil
	}
	for _, dir := range []string{r.f.OptPrefix(), r.f.LinkedKeg(), r.f.Prefix()} {
		opts, ok, err := r.deps.Receipts.BuildOptions(dir)
		if err != nil {
			return domain.BuildOptions{}, err
		}
		if ok {
			return opts, nil
		}
	}
	return r.f.Build, nil
}

// withBuild runs fn with f.Build replaced by build. The original is restored
// however fn exits.
func withBuild(f *domain.Formula, build domain.BuildOptions, fn func() (string, error)) (string, error) {
	saved := f.Build
	f.Build = build
	defer func() { f.Build = saved }()
	return fn()
}

func (r *run) elisp() (string, error) {
	if r.f.KegOnly || r.keg == nil {
		return "", nil
	}
	ok, err := inspect.New(r.keg).ElispInstalled()
	if err != nil || !ok {
		return "", err
	}
	return fmt.Sprintf("Emacs Lisp files have been installed to:\n  %s\n",
		filepath.Join(r.deps.Config.Prefix, "share", "emacs", "site-lisp", r.f.Name)), nil
}

func (r *run) which(name string) bool {
	if r.deps.Executables == nil {
		return false
	}
	_, ok := r.deps.Executables.Which(name)
	return ok
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
