// Package cellar holds the health checks run against a freshly installed
// keg.
package cellar

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/openkeg/openkeg/internal/domain/inspect"
	"github.com/openkeg/openkeg/internal/domain/linkage"
	"github.com/openkeg/openkeg/internal/domain/shebang"
)

const (
	CheckShadowedHeaders      = "shadowed_headers"
	CheckOpenSSLLinks         = "openssl_links"
	CheckPythonFrameworkLinks = "python_framework_links"
	CheckPythonVirtualenv     = "python_virtualenv"
	CheckPythonShebangs       = "python_shebangs"
	CheckLinkage              = "linkage"
)

// Deps are the collaborators the checks consult.
type Deps struct {
	Config      domain.Config
	Headers     domain.HeaderIndex
	Objects     domain.ObjectParser
	Interpreter domain.InterpreterResolver
	Logger      *zap.Logger
}

// Checks runs the cellar health checks. Each check returns nil when it
// passes.
type Checks struct {
	deps     Deps
	linkage  *linkage.Auditor
	shebangs *shebang.Auditor
}

func New(deps Deps) *Checks {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Checks{
		deps:     deps,
		linkage:  linkage.New(deps.Objects),
		shebangs: shebang.New(),
	}
}

// AuditInstalled runs every check, reporting informational findings to r.
// Broken linkage is returned as an *domain.AuditFailure and never reported.
func (c *Checks) AuditInstalled(f *domain.Formula, r domain.Reporter) error {
	checks := []func(*domain.Formula) (*domain.Finding, error){
		c.ShadowedHeaders,
		c.OpenSSLLinks,
		func(f *domain.Formula) (*domain.Finding, error) { return c.PythonFrameworkLinks(f, f.Lib()) },
		c.PythonVirtualenv,
		c.PythonShebangs,
	}
	for _, check := range checks {
		finding, err := check(f)
		if err != nil {
			return err
		}
		if finding != nil {
			r.Report(*finding)
		}
	}

	finding, err := c.Linkage(f)
	if err != nil {
		return err
	}
	if finding != nil {
		return &domain.AuditFailure{Formula: f.Name, Finding: *finding}
	}
	return nil
}

// ShadowedHeaders flags headers that would shadow the SDK's once linked
// into the prefix.
func (c *Checks) ShadowedHeaders(f *domain.Formula) (*domain.Finding, error) {
	exemptions := c.deps.Config.HeaderExemptions
	if len(exemptions) == 0 {
		exemptions = domain.DefaultHeaderExemptions
	}
	for _, prefix := range exemptions {
		if strings.HasPrefix(f.Name, prefix) {
			return nil, nil
		}
	}

	mac := c.deps.Config.MacOS()
	if mac.Before("mavericks") && strings.HasPrefix(f.Name, "postgresql") {
		return nil, nil
	}
	if mac.Before("yosemite") && strings.HasPrefix(f.Name, "memcached") {
		return nil, nil
	}

	if f.KegOnly {
		return nil, nil
	}
	ok, err := inspect.IsDir(f.Include())
	if err != nil || !ok {
		return nil, err
	}
	if c.deps.Headers == nil {
		return nil, nil
	}

	installed, err := inspect.RelativeFiles(f.Include(), ".h")
	if err != nil {
		return nil, err
	}
	system, err := c.deps.Headers.SystemHeaders()
	if err != nil {
		return nil, err
	}

	var shadowed []string
	for _, h := range installed {
		if system[h] {
			shadowed = append(shadowed, filepath.Join(f.Include(), h))
		}
	}
	if len(shadowed) == 0 {
		return nil, nil
	}
	return &domain.Finding{
		Check:    CheckShadowedHeaders,
		Severity: domain.SeverityWarning,
		Title:    `Header files that shadow system header files were installed to "` + f.Include() + `"`,
		Message:  "The offending files are:",
		Paths:    shadowed,
	}, nil
}

// OpenSSLLinks flags objects linked against the system's crypto libraries.
func (c *Checks) OpenSSLLinks(f *domain.Formula) (*domain.Finding, error) {
	keg, ok, err := c.prefixKeg(f)
	if err != nil || !ok {
		return nil, err
	}
	objects, err := c.linkage.SystemCryptoLinks(keg)
	if err != nil || len(objects) == 0 {
		return nil, err
	}
	return &domain.Finding{
		Check:    CheckOpenSSLLinks,
		Severity: domain.SeverityWarning,
		Title:    "object files were linked against system openssl",
		Message: "These object files were linked against the deprecated system OpenSSL or\n" +
			"the system's private LibreSSL.\n" +
			"Adding `depends_on \"openssl\"` to the formula may help.",
		Paths: objects,
	}, nil
}

// PythonFrameworkLinks flags extension modules under lib linked directly to
// a Python framework.
func (c *Checks) PythonFrameworkLinks(f *domain.Formula, lib string) (*domain.Finding, error) {
	modules, err := c.linkage.PythonFrameworkLinks(lib)
	if err != nil || len(modules) == 0 {
		return nil, err
	}
	return &domain.Finding{
		Check:    CheckPythonFrameworkLinks,
		Severity: domain.SeverityWarning,
		Title:    "python modules have explicit framework links",
		Message: "These python extension modules were linked directly to a Python\n" +
			"framework binary. They should be linked with -undefined dynamic_lookup\n" +
			"instead of -lpython or -framework Python.",
		Paths: modules,
	}, nil
}

// PythonVirtualenv flags a virtualenv in libexec built on the system Python.
func (c *Checks) PythonVirtualenv(f *domain.Formula) (*domain.Finding, error) {
	if c.skipPython(f) {
		return nil, nil
	}
	framework := filepath.Join(f.Libexec(), ".Python")
	info, err := os.Lstat(framework)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil, nil
	}
	target, err := filepath.EvalSymlinks(framework)
	if err != nil {
		if target, err = os.Readlink(framework); err != nil {
			return nil, &domain.IOFailure{Op: "readlink", Path: framework, Err: err}
		}
	}
	if !strings.HasPrefix(target, "/System") {
		return nil, nil
	}
	return &domain.Finding{
		Check:    CheckPythonVirtualenv,
		Severity: domain.SeverityWarning,
		Title:    "virtualenv created against system Python",
		Message: "This formula created a virtualenv using system Python.\n" +
			"Please add `depends_on :python` to the formula.",
		Paths: []string{framework},
	}, nil
}

// PythonShebangs flags scripts in bin that run the system Python.
func (c *Checks) PythonShebangs(f *domain.Formula) (*domain.Finding, error) {
	ok, err := inspect.IsDir(f.Bin())
	if err != nil || !ok {
		return nil, err
	}
	if c.skipPython(f) {
		return nil, nil
	}
	scripts, err := c.shebangs.SystemPythonShebangs(f.Bin())
	if err != nil || len(scripts) == 0 {
		return nil, err
	}
	return &domain.Finding{
		Check:    CheckPythonShebangs,
		Severity: domain.SeverityWarning,
		Title:    "python scripts run with system python",
		Message: "These python scripts have shebangs that invoke system Python.\n" +
			"They should run Homebrew's python instead. Adding `depends_on :python`\n" +
			"to the formula may help.",
		Paths: scripts,
	}, nil
}

// Linkage flags library references that no longer resolve.
func (c *Checks) Linkage(f *domain.Formula) (*domain.Finding, error) {
	keg, ok, err := c.prefixKeg(f)
	if err != nil || !ok {
		return nil, err
	}
	broken, err := c.linkage.BrokenLinks(keg)
	if err != nil || len(broken) == 0 {
		return nil, err
	}
	return &domain.Finding{
		Check:    CheckLinkage,
		Severity: domain.SeverityError,
		Title:    "The installation was broken.",
		Message:  "Broken dylib links found:",
		Paths:    broken,
	}, nil
}

func (c *Checks) prefixKeg(f *domain.Formula) (*domain.Keg, bool, error) {
	ok, err := inspect.IsDir(f.Prefix())
	if err != nil || !ok {
		return nil, false, err
	}
	return &domain.Keg{Path: f.Prefix()}, true, nil
}

// skipPython is true when the formula depends on python and the user's
// default python is the system one, in which case system shebangs and
// virtualenvs are expected.
func (c *Checks) skipPython(f *domain.Formula) bool {
	return f.RequiresPython() && c.defaultPythonIsSystemPython()
}

func (c *Checks) defaultPythonIsSystemPython() bool {
	if c.deps.Interpreter == nil {
		return false
	}
	exe, err := c.deps.Interpreter.ResolveDefaultInterpreter()
	if err != nil {
		c.deps.Logger.Warn("Inconsistent Python environment", zap.Error(err))
		return false
	}
	if _, err := os.Stat(exe); err != nil {
		return false
	}
	return strings.HasPrefix(exe, "/usr/bin/python")
}
