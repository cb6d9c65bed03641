package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a8m/envsubst"
	"gopkg.in/yaml.v3"

	"github.com/openkeg/openkeg/internal/domain"
)

const (
	fileName = ".openkeg.yaml"
	envVar   = "OPENKEG_CONFIG"
)

// YAMLLoader implements domain.ConfigLoader by reading .openkeg.yaml.
type YAMLLoader struct {
	getenv func(string) string
}

// New creates a YAMLLoader reading the process environment.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// NewWithEnv creates a YAMLLoader that reads variables through getenv.
func NewWithEnv(getenv func(string) string) *YAMLLoader { return &YAMLLoader{getenv: getenv} }

// Load reads the config at path. With an empty path it tries $OPENKEG_CONFIG
// and then ~/.openkeg.yaml, and falls back to defaults when neither exists.
// ${VAR} references in the file are expanded before parsing.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if prefix := l.getenv("HOMEBREW_PREFIX"); prefix != "" {
		cfg.Prefix = prefix
	}
	if cellar := l.getenv("HOMEBREW_CELLAR"); cellar != "" {
		cfg.Cellar = cellar
	}

	explicit := path != ""
	if !explicit {
		path = l.searchPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			data, err = envsubst.Bytes(data)
			if err != nil {
				return domain.Config{}, fmt.Errorf("expanding env vars in %s: %w", path, err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return domain.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if cfg.Shell == "" && domain.ParseShell(l.getenv("SHELL")) != "" {
		cfg.Shell = l.getenv("SHELL")
	}
	if cfg.OriginalPath == "" {
		cfg.OriginalPath = l.getenv("PATH")
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

func (l *YAMLLoader) searchPath() string {
	if p := l.getenv(envVar); p != "" {
		return p
	}
	home := l.getenv("HOME")
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, fileName)
}
