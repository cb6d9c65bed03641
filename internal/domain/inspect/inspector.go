// Package inspect answers questions about what a keg installed.
package inspect

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/openkeg/openkeg/internal/domain"
)

// Inspector runs filesystem queries against a resolved keg.
type Inspector struct {
	keg *domain.Keg
}

func New(keg *domain.Keg) *Inspector {
	return &Inspector{keg: keg}
}

// CompletionInstalled reports whether the keg ships completions for sh. zsh
// completion files are the ones named with a leading underscore.
func (i *Inspector) CompletionInstalled(sh domain.Shell) (bool, error) {
	layout, ok := domain.LayoutFor(sh)
	if !ok || layout.CompletionDir == "" {
		return false, nil
	}
	names, err := childNames(filepath.Join(i.keg.Path, layout.CompletionDir))
	if err != nil {
		return false, err
	}
	if sh == domain.ShellZsh {
		return anyName(names, func(n string) bool { return strings.HasPrefix(n, "_") }), nil
	}
	return len(names) > 0, nil
}

// FunctionsInstalled reports whether the keg ships shell functions for sh.
// zsh functions share a directory with completions and are told apart by
// not starting with an underscore.
func (i *Inspector) FunctionsInstalled(sh domain.Shell) (bool, error) {
	layout, ok := domain.LayoutFor(sh)
	if !ok || layout.FunctionDir == "" {
		return false, nil
	}
	names, err := childNames(filepath.Join(i.keg.Path, layout.FunctionDir))
	if err != nil {
		return false, err
	}
	if sh == domain.ShellZsh {
		return anyName(names, func(n string) bool { return !strings.HasPrefix(n, "_") }), nil
	}
	return len(names) > 0, nil
}

// ElispInstalled reports whether share/emacs/site-lisp/<name> holds any
// Emacs Lisp source or byte-compiled file.
func (i *Inspector) ElispInstalled() (bool, error) {
	names, err := childNames(filepath.Join(i.keg.Path, "share", "emacs", "site-lisp", i.keg.Name()))
	if err != nil {
		return false, err
	}
	return anyName(names, func(n string) bool {
		ext := filepath.Ext(n)
		return ext == ".el" || ext == ".elc"
	}), nil
}

// PlistFiles lists the service descriptors at the top of the keg.
func (i *Inspector) PlistFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(i.keg.Path, "*.plist"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func (i *Inspector) PlistInstalled() (bool, error) {
	files, err := i.PlistFiles()
	return len(files) > 0, err
}

var objectMagics = [][]byte{
	{0xfe, 0xed, 0xfa, 0xce}, // Mach-O 32-bit
	{0xce, 0xfa, 0xed, 0xfe},
	{0xfe, 0xed, 0xfa, 0xcf}, // Mach-O 64-bit
	{0xcf, 0xfa, 0xed, 0xfe},
	{0xca, 0xfe, 0xba, 0xbe}, // universal
	{0x7f, 'E', 'L', 'F'},
}

// NativeObjectFiles walks the keg and returns every regular file that is a
// Mach-O or ELF object. Symlinks are skipped and hard links reported once.
func (i *Inspector) NativeObjectFiles() ([]string, error) {
	var objects []string
	seen := map[fileID]bool{}
	err := filepath.WalkDir(i.keg.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}
		ok, err := IsNativeObject(path)
		if err != nil || !ok {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		id := idOf(path, info)
		if seen[id] {
			return nil
		}
		seen[id] = true
		objects = append(objects, path)
		return nil
	})
	if err != nil {
		return nil, &domain.IOFailure{Op: "walk", Path: i.keg.Path, Err: err}
	}
	return objects, nil
}

// IsNativeObject sniffs the file's magic number.
func IsNativeObject(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	for _, m := range objectMagics {
		if bytes.Equal(magic, m) {
			return true, nil
		}
	}
	return false, nil
}

// RelativeFiles returns the paths, relative to dir, of every file below dir
// whose name ends in suffix. A missing dir yields no files.
func RelativeFiles(dir, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && isMissing(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, &domain.IOFailure{Op: "walk", Path: dir, Err: err}
	}
	sort.Strings(files)
	return files, nil
}

// IsDir reports whether path is an existing directory. Lookup errors other
// than "missing" propagate.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, &domain.IOFailure{Op: "stat", Path: path, Err: err}
	}
	return info.IsDir(), nil
}

func childNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, &domain.IOFailure{Op: "readdir", Path: dir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func anyName(names []string, pred func(string) bool) bool {
	for _, n := range names {
		if pred(n) {
			return true
		}
	}
	return false
}

func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
