package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultHeaderExemptions are formula name prefixes allowed to install
// headers that shadow the SDK's.
var DefaultHeaderExemptions = []string{"libtool", "subversion", "berkeley-db"}

// Config holds host configuration loaded from .openkeg.yaml.
type Config struct {
	Prefix           string   `yaml:"prefix"             json:"prefix"`
	Cellar           string   `yaml:"cellar"             json:"cellar,omitempty"`
	SDKPath          string   `yaml:"sdk_path"           json:"sdk_path,omitempty"`
	MacOSVersion     string   `yaml:"macos_version"      json:"macos_version,omitempty"`
	LaunchAgentsDir  string   `yaml:"launch_agents_dir"  json:"launch_agents_dir"`
	LaunchDaemonsDir string   `yaml:"launch_daemons_dir" json:"launch_daemons_dir"`
	Shell            string   `yaml:"shell"              json:"shell,omitempty"`
	OriginalPath     string   `yaml:"original_path"      json:"original_path,omitempty"`
	HeaderExemptions []string `yaml:"header_exemptions"  json:"header_exemptions,omitempty"`
}

// DefaultConfig returns the layout of a stock Intel macOS install.
func DefaultConfig() Config {
	return Config{
		Prefix:           "/usr/local",
		LaunchAgentsDir:  "~/Library/LaunchAgents",
		LaunchDaemonsDir: "/Library/LaunchDaemons",
		HeaderExemptions: DefaultHeaderExemptions,
	}
}

// Layout returns the prefix and Cellar, defaulting the Cellar to
// PREFIX/Cellar.
func (c Config) Layout() Layout {
	cellar := c.Cellar
	if cellar == "" {
		cellar = filepath.Join(c.Prefix, "Cellar")
	}
	return Layout{Prefix: c.Prefix, Cellar: cellar}
}

// UserShell is the shell PATH hints are written for.
func (c Config) UserShell() Shell {
	return ParseShell(c.Shell)
}

// MacOS returns the configured host release; invalid values were rejected by
// Validate, so errors here fall back to unknown.
func (c Config) MacOS() MacOSVersion {
	v, _ := ParseMacOSVersion(c.MacOSVersion)
	return v
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	if !filepath.IsAbs(c.Prefix) {
		return fmt.Errorf("prefix %q must be an absolute path", c.Prefix)
	}
	if c.Cellar != "" && !filepath.IsAbs(c.Cellar) {
		return fmt.Errorf("cellar %q must be an absolute path", c.Cellar)
	}
	if c.SDKPath != "" && !filepath.IsAbs(c.SDKPath) {
		return fmt.Errorf("sdk_path %q must be an absolute path", c.SDKPath)
	}
	if _, err := ParseMacOSVersion(c.MacOSVersion); err != nil {
		return err
	}
	if c.Shell != "" && ParseShell(c.Shell) == "" {
		return fmt.Errorf("unknown shell %q (valid: bash, zsh, fish, ksh, sh, csh, tcsh)", c.Shell)
	}
	for i, e := range c.HeaderExemptions {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("header_exemptions[%d] must not be empty", i)
		}
	}
	return nil
}
