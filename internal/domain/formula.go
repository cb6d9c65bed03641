package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Layout locates the package manager's prefix and Cellar on disk.
type Layout struct {
	Prefix string `json:"prefix"`
	Cellar string `json:"cellar"`
}

// ServiceDescriptor is the background service a formula declares.
type ServiceDescriptor struct {
	Plist   string `json:"plist,omitempty"`
	Startup bool   `json:"startup"`
	Manual  string `json:"manual,omitempty"`
}

// Formula is an installed package: its identity, install-time metadata and
// the locations derived from the layout.
type Formula struct {
	Name          string             `json:"name"`
	FullName      string             `json:"full_name"`
	Version       string             `json:"version"`
	KegOnly       bool               `json:"keg_only"`
	KegOnlyReason string             `json:"keg_only_reason,omitempty"`
	Requirements  []string           `json:"requirements,omitempty"`
	Dependencies  []string           `json:"dependencies,omitempty"`
	Options       []string           `json:"options,omitempty"`
	Service       *ServiceDescriptor `json:"service,omitempty"`
	Build         BuildOptions       `json:"build"`
	Layout        Layout             `json:"layout"`

	// CaveatsFunc renders the formula's declared caveats. It sees f.Build as
	// it was when the keg was installed.
	CaveatsFunc func(f *Formula) (string, error) `json:"-"`
}

// Caveats returns the declared caveat text, or "" when none is declared.
func (f *Formula) Caveats() (string, error) {
	if f.CaveatsFunc == nil {
		return "", nil
	}
	return f.CaveatsFunc(f)
}

// RequiresPython reports whether the formula declares a python requirement.
func (f *Formula) RequiresPython() bool {
	for _, r := range f.Requirements {
		if r == "python" {
			return true
		}
	}
	return false
}

func (f *Formula) Prefix() string {
	return filepath.Join(f.Layout.Cellar, f.Name, f.Version)
}

func (f *Formula) OptPrefix() string {
	return filepath.Join(f.Layout.Prefix, "opt", f.Name)
}

// LinkedKeg is the symlink the package manager keeps for the linked version.
func (f *Formula) LinkedKeg() string {
	return filepath.Join(f.Layout.Prefix, "var", "homebrew", "linked", f.Name)
}

// KegCandidates lists, in resolution order, where the keg may live.
func (f *Formula) KegCandidates() []string {
	return []string{f.Prefix(), f.OptPrefix(), f.LinkedKeg()}
}

func (f *Formula) Bin() string     { return filepath.Join(f.Prefix(), "bin") }
func (f *Formula) Sbin() string    { return filepath.Join(f.Prefix(), "sbin") }
func (f *Formula) Lib() string     { return filepath.Join(f.Prefix(), "lib") }
func (f *Formula) Include() string { return filepath.Join(f.Prefix(), "include") }
func (f *Formula) Share() string   { return filepath.Join(f.Prefix(), "share") }
func (f *Formula) Libexec() string { return filepath.Join(f.Prefix(), "libexec") }

func (f *Formula) OptBin() string     { return filepath.Join(f.OptPrefix(), "bin") }
func (f *Formula) OptSbin() string    { return filepath.Join(f.OptPrefix(), "sbin") }
func (f *Formula) OptLib() string     { return filepath.Join(f.OptPrefix(), "lib") }
func (f *Formula) OptInclude() string { return filepath.Join(f.OptPrefix(), "include") }
func (f *Formula) OptShare() string   { return filepath.Join(f.OptPrefix(), "share") }

// PlistName is the launchd label of the formula's service.
func (f *Formula) PlistName() string {
	return "homebrew.mxcl." + f.Name
}

func (f *Formula) PlistPath() string {
	return filepath.Join(f.Prefix(), f.PlistName()+".plist")
}

// HasPlist reports whether the formula declares a service descriptor.
func (f *Formula) HasPlist() bool {
	return f.Service != nil && strings.TrimSpace(f.Service.Plist) != ""
}

// PlistStartup reports whether the service should start at boot rather than
// at login.
func (f *Formula) PlistStartup() bool {
	return f.Service != nil && f.Service.Startup
}

func (f *Formula) PlistManual() string {
	if f.Service == nil {
		return ""
	}
	return f.Service.Manual
}

// DisplayName is the tap-qualified name when known.
func (f *Formula) DisplayName() string {
	if f.FullName != "" {
		return f.FullName
	}
	return f.Name
}

// BuildOptions records which options a keg was built with.
type BuildOptions struct {
	Used   []string `json:"used_options"`
	Unused []string `json:"unused_options"`
}

func (b BuildOptions) include(flag string) bool {
	for _, o := range b.Used {
		if strings.TrimPrefix(o, "--") == flag {
			return true
		}
	}
	return false
}

func (b BuildOptions) defined(flag string) bool {
	if b.include(flag) {
		return true
	}
	for _, o := range b.Unused {
		if strings.TrimPrefix(o, "--") == flag {
			return true
		}
	}
	return false
}

// With reports whether the build enabled the named feature, through either a
// with-NAME or a without-NAME option.
func (b BuildOptions) With(name string) bool {
	switch {
	case b.defined("with-" + name):
		return b.include("with-" + name)
	case b.defined("without-" + name):
		return !b.include("without-" + name)
	default:
		return false
	}
}

func (b BuildOptions) Without(name string) bool {
	return !b.With(name)
}

// Equal compares option lists in order.
func (b BuildOptions) Equal(o BuildOptions) bool {
	return slices.Equal(b.Used, o.Used) && slices.Equal(b.Unused, o.Unused)
}
