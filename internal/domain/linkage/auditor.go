// Package linkage inspects the dynamic libraries a keg's native objects
// depend on.
package linkage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/openkeg/openkeg/internal/domain/inspect"
)

var (
	systemCryptoPattern    = regexp.MustCompile(`/usr/lib/lib(crypto|ssl|tls)\..*dylib`)
	pythonFrameworkPattern = regexp.MustCompile(`Python\.framework`)
)

// harmlessPrefixes hold system libraries that live in the dyld shared cache
// rather than on disk, so a missing file there is not a broken link.
var harmlessPrefixes = []string{"/usr/lib/", "/System/Library/"}

// Auditor scans native objects through an ObjectParser.
type Auditor struct {
	parser domain.ObjectParser
}

func New(parser domain.ObjectParser) *Auditor {
	return &Auditor{parser: parser}
}

// BrokenLinks returns the absolute library paths referenced by the keg's
// objects that do not exist on disk. Loader-relative names (@rpath,
// @loader_path, ...) and bare sonames are not checked.
func (a *Auditor) BrokenLinks(keg *domain.Keg) ([]string, error) {
	objects, err := inspect.New(keg).NativeObjectFiles()
	if err != nil {
		return nil, err
	}

	broken := make(map[string]bool)
	for _, obj := range objects {
		for _, dylib := range a.libraries(obj) {
			if strings.HasPrefix(dylib, "@") || !filepath.IsAbs(dylib) {
				continue
			}
			_, err := os.Stat(dylib)
			switch {
			case err == nil:
			case errors.Is(err, fs.ErrNotExist):
				if !harmless(dylib) {
					broken[dylib] = true
				}
			default:
				return nil, &domain.IOFailure{Op: "stat", Path: dylib, Err: err}
			}
		}
	}
	return sortedKeys(broken), nil
}

// SystemCryptoLinks returns the keg's objects linked against the deprecated
// system OpenSSL or the system's private LibreSSL.
func (a *Auditor) SystemCryptoLinks(keg *domain.Keg) ([]string, error) {
	objects, err := inspect.New(keg).NativeObjectFiles()
	if err != nil {
		return nil, err
	}
	return a.linkedMatching(objects, systemCryptoPattern), nil
}

// PythonFrameworkLinks returns the Python extension modules below
// lib/python*/site-packages that link a Python framework binary directly.
func (a *Auditor) PythonFrameworkLinks(lib string) ([]string, error) {
	var modules []string
	err := filepath.WalkDir(lib, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == lib && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".so") {
			return nil
		}
		rel, err := filepath.Rel(lib, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) >= 3 && strings.HasPrefix(parts[0], "python") && parts[1] == "site-packages" {
			modules = append(modules, path)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.IOFailure{Op: "walk", Path: lib, Err: err}
	}
	return a.linkedMatching(modules, pythonFrameworkPattern), nil
}

func (a *Auditor) linkedMatching(objects []string, pattern *regexp.Regexp) []string {
	var matched []string
	for _, obj := range objects {
		for _, dylib := range a.libraries(obj) {
			if pattern.MatchString(dylib) {
				matched = append(matched, obj)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched
}

// libraries skips objects the parser cannot read.
func (a *Auditor) libraries(obj string) []string {
	if a.parser == nil {
		return nil
	}
	libs, err := a.parser.DynamicallyLinkedLibraries(obj)
	if err != nil {
		return nil
	}
	return libs
}

func harmless(dylib string) bool {
	for _, p := range harmlessPrefixes {
		if strings.HasPrefix(dylib, p) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
