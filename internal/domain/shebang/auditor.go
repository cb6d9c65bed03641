// Package shebang finds scripts whose interpreter line points at the
// system's Python.
package shebang

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/openkeg/openkeg/internal/domain"
)

// SystemPython is the interpreter line prefix of scripts run by the
// system Python.
const SystemPython = "#!/usr/bin/python"

// Auditor compares the leading bytes of scripts against a shebang prefix.
type Auditor struct {
	prefix string
}

func New() *Auditor {
	return &Auditor{prefix: SystemPython}
}

// SystemPythonShebangs returns the children of binDir that start with the
// system Python shebang. Files shorter than the prefix do not match; a
// missing binDir yields nothing.
func (a *Auditor) SystemPythonShebangs(binDir string) ([]string, error) {
	entries, err := os.ReadDir(binDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.IOFailure{Op: "readdir", Path: binDir, Err: err}
	}

	var matched []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(binDir, e.Name())
		ok, err := a.startsWith(path)
		if err != nil {
			return nil, &domain.IOFailure{Op: "read", Path: path, Err: err}
		}
		if ok {
			matched = append(matched, path)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

func (a *Auditor) startsWith(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// dangling symlink
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil || info.IsDir() {
		return false, err
	}

	head := make([]byte, len(a.prefix))
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return string(head) == a.prefix, nil
}
