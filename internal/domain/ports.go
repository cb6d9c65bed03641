package domain

// ConfigLoader loads host configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// FormulaLoader reads a formula definition and lays it out on the host.
type FormulaLoader interface {
	Load(path string, layout Layout) (*Formula, error)
}

// ReceiptReader reconstructs the build options a keg was installed with.
// ok is false when the keg carries no receipt.
type ReceiptReader interface {
	BuildOptions(kegPath string) (opts BuildOptions, ok bool, err error)
}

// ObjectParser lists the dynamic libraries a native object file links.
type ObjectParser interface {
	DynamicallyLinkedLibraries(path string) ([]string, error)
}

// HeaderIndex lists the platform SDK's system headers, relative to its
// usr/include directory.
type HeaderIndex interface {
	SystemHeaders() (map[string]bool, error)
}

// ExecutableLocator answers whether a command is available on the host.
type ExecutableLocator interface {
	Which(name string) (string, bool)
}

// ServiceManager queries the live service manager.
type ServiceManager interface {
	IsLoaded(label string) bool
}

// MultiplexerDetector reports whether the session runs inside a terminal
// multiplexer that breaks service management commands.
type MultiplexerDetector interface {
	BreaksServices() bool
}

// PythonProbe asks a Python interpreter (e.g. "python2.7") about its import
// path.
type PythonProbe interface {
	ReadsBrewedPthFiles(python string) bool
	InSysPath(python, path string) bool
	UserSitePackages(python string) string
}

// InterpreterResolver resolves the real executable of the user's default
// python. Failures are returned as *ProbeFailure.
type InterpreterResolver interface {
	ResolveDefaultInterpreter() (string, error)
}

// Reporter receives informational audit findings.
type Reporter interface {
	Report(f Finding)
}

// GitInfo provides revision information for the repository holding a
// formula definition.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
