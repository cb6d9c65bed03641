// Package sdk indexes the headers shipped with the platform SDK.
package sdk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are include subtrees that never hold headers a keg could shadow.
var skipDirs = map[string]bool{
	".git": true,
}

// Index implements domain.HeaderIndex by walking <sdk>/usr/include.
type Index struct {
	root string
}

// New returns an index over sdkPath. An empty sdkPath has no headers.
func New(sdkPath string) *Index {
	return &Index{root: sdkPath}
}

// SystemHeaders returns header paths relative to usr/include, e.g. "zlib.h"
// or "sys/types.h".
func (x *Index) SystemHeaders() (map[string]bool, error) {
	headers := make(map[string]bool)
	if x.root == "" {
		return headers, nil
	}

	include := filepath.Join(x.root, "usr", "include")
	err := filepath.WalkDir(include, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == include && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), ".h") {
			rel, _ := filepath.Rel(include, path)
			headers[filepath.ToSlash(rel)] = true
		}
		return nil
	})
	return headers, err
}
