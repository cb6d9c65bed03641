package domain

import (
	"os"
	"path/filepath"
)

// Keg is the on-disk file set of one installed formula version.
type Keg struct {
	Path string `json:"path"`
}

// Name is the formula name the keg belongs to (Cellar/<name>/<version>).
func (k *Keg) Name() string {
	return filepath.Base(filepath.Dir(k.Path))
}

func (k *Keg) String() string { return k.Path }

// ResolveKeg returns the first candidate that resolves to an existing
// directory, following symlinks. Candidates that cannot be resolved are
// skipped; the second return value is false when none qualifies.
func ResolveKeg(candidates []string) (*Keg, bool) {
	for _, c := range candidates {
		resolved, err := filepath.EvalSymlinks(c)
		if err != nil {
			continue
		}
		info, err := os.Stat(resolved)
		if err != nil || !info.IsDir() {
			continue
		}
		return &Keg{Path: resolved}, true
	}
	return nil, false
}
