package inspect_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/openkeg/openkeg/internal/domain/inspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var elfHeader = []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}

func newKeg(t *testing.T) *domain.Keg {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cellar", "foo", "1.0")
	require.NoError(t, os.MkdirAll(path, 0o755))
	return &domain.Keg{Path: path}
}

func touch(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestCompletionInstalled(t *testing.T) {
	keg := newKeg(t)
	in := inspect.New(keg)

	for _, sh := range domain.CompletionShells {
		ok, err := in.CompletionInstalled(sh)
		require.NoError(t, err)
		assert.False(t, ok, "nothing installed for %s", sh)
	}

	touch(t, filepath.Join(keg.Path, "etc", "bash_completion.d", "foo"), nil)
	touch(t, filepath.Join(keg.Path, "share", "fish", "vendor_completions.d", "foo.fish"), nil)

	ok, err := in.CompletionInstalled(domain.ShellBash)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = in.CompletionInstalled(domain.ShellFish)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestZshCompletionsAndFunctionsShareADirectory(t *testing.T) {
	keg := newKeg(t)
	in := inspect.New(keg)
	touch(t, filepath.Join(keg.Path, "share", "zsh", "site-functions", "foo-prompt"), nil)

	completions, err := in.CompletionInstalled(domain.ShellZsh)
	require.NoError(t, err)
	functions, err := in.FunctionsInstalled(domain.ShellZsh)
	require.NoError(t, err)
	assert.False(t, completions)
	assert.True(t, functions)

	touch(t, filepath.Join(keg.Path, "share", "zsh", "site-functions", "_foo"), nil)
	completions, err = in.CompletionInstalled(domain.ShellZsh)
	require.NoError(t, err)
	assert.True(t, completions)
}

func TestFunctionsInstalled_BashHasNone(t *testing.T) {
	keg := newKeg(t)
	touch(t, filepath.Join(keg.Path, "etc", "bash_completion.d", "foo"), nil)

	ok, err := inspect.New(keg).FunctionsInstalled(domain.ShellBash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestElispInstalled(t *testing.T) {
	keg := newKeg(t)
	in := inspect.New(keg)
	dir := filepath.Join(keg.Path, "share", "emacs", "site-lisp", "foo")

	touch(t, filepath.Join(dir, "README"), nil)
	ok, err := in.ElispInstalled()
	require.NoError(t, err)
	assert.False(t, ok)

	touch(t, filepath.Join(dir, "foo.elc"), nil)
	ok, err = in.ElispInstalled()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlistFiles(t *testing.T) {
	keg := newKeg(t)
	touch(t, filepath.Join(keg.Path, "homebrew.mxcl.foo.plist"), nil)
	touch(t, filepath.Join(keg.Path, "share", "nested.plist"), nil)

	files, err := inspect.New(keg).PlistFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(keg.Path, "homebrew.mxcl.foo.plist")}, files)
}

func TestNativeObjectFiles(t *testing.T) {
	keg := newKeg(t)
	bin := filepath.Join(keg.Path, "bin", "foo")
	touch(t, bin, elfHeader)
	touch(t, filepath.Join(keg.Path, "lib", "libfoo.dylib"), []byte{0xcf, 0xfa, 0xed, 0xfe, 7, 0, 0, 1})
	touch(t, filepath.Join(keg.Path, "bin", "script"), []byte("#!/bin/sh\n"))
	touch(t, filepath.Join(keg.Path, "README"), []byte("x"))
	require.NoError(t, os.Symlink(bin, filepath.Join(keg.Path, "bin", "foo-link")))
	require.NoError(t, os.Link(bin, filepath.Join(keg.Path, "bin", "foo-hardlink")))

	objects, err := inspect.New(keg).NativeObjectFiles()
	require.NoError(t, err)
	assert.Len(t, objects, 2, "symlinks skipped and hard links reported once")
	assert.Contains(t, objects, filepath.Join(keg.Path, "lib", "libfoo.dylib"))
}

func TestNativeObjectFiles_ManyHardLinks(t *testing.T) {
	keg := newKeg(t)
	first := filepath.Join(keg.Path, "lib", "libfoo.1.dylib")
	second := filepath.Join(keg.Path, "lib", "libbar.1.dylib")
	touch(t, first, elfHeader)
	touch(t, second, elfHeader)
	require.NoError(t, os.MkdirAll(filepath.Join(keg.Path, "libexec"), 0o755))
	for i := range 50 {
		require.NoError(t, os.Link(first, filepath.Join(keg.Path, "lib", fmt.Sprintf("libfoo-%02d.dylib", i))))
		require.NoError(t, os.Link(second, filepath.Join(keg.Path, "libexec", fmt.Sprintf("libbar-%02d.dylib", i))))
	}

	objects, err := inspect.New(keg).NativeObjectFiles()
	require.NoError(t, err)
	assert.Len(t, objects, 2)
}

func TestIsNativeObject_ShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny")
	touch(t, path, []byte{0x7f, 'E'})

	ok, err := inspect.IsNativeObject(path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRelativeFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "zlib.h"), nil)
	touch(t, filepath.Join(dir, "sys", "types.h"), nil)
	touch(t, filepath.Join(dir, "notes.txt"), nil)

	files, err := inspect.RelativeFiles(dir, ".h")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("sys", "types.h"), "zlib.h"}, files)

	files, err = inspect.RelativeFiles(filepath.Join(dir, "missing"), ".h")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	touch(t, file, nil)

	ok, err := inspect.IsDir(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = inspect.IsDir(file)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = inspect.IsDir(filepath.Join(file, "below-a-file"))
	require.NoError(t, err)
	assert.False(t, ok)
}
