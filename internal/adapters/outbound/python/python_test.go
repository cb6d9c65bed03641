package python_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/openkeg/openkeg/internal/adapters/outbound/python"
	"github.com/openkeg/openkeg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeInterpreter writes an executable shell script standing in for python.
func fakeInterpreter(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts required")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestProbe_ReadsBrewedPthFiles(t *testing.T) {
	prefix := t.TempDir()
	site := filepath.Join(prefix, "lib", "python2.7", "site-packages")
	require.NoError(t, os.MkdirAll(site, 0o755))

	marker := filepath.Join(site, "homebrew-pth-probe.pth")
	py := fakeInterpreter(t, t.TempDir(), "python2.7", "test -f '"+marker+"'")

	p := python.NewProbe(prefix, zap.NewNop())
	assert.True(t, p.ReadsBrewedPthFiles(py))
	assert.NoFileExists(t, marker, "probe file should be removed")
}

func TestProbe_ReadsBrewedPthFiles_Rejected(t *testing.T) {
	prefix := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "lib", "python3.6", "site-packages"), 0o755))
	py := fakeInterpreter(t, t.TempDir(), "python3.6", "exit 1")

	assert.False(t, python.NewProbe(prefix, zap.NewNop()).ReadsBrewedPthFiles(py))
}

func TestProbe_ReadsBrewedPthFiles_NoSitePackages(t *testing.T) {
	py := fakeInterpreter(t, t.TempDir(), "python2.7", "exit 0")
	assert.False(t, python.NewProbe(t.TempDir(), zap.NewNop()).ReadsBrewedPthFiles(py))
}

func TestProbe_UserSitePackages(t *testing.T) {
	py := fakeInterpreter(t, t.TempDir(), "python2.7", "echo /Users/me/Library/Python/2.7/lib/python/site-packages")
	got := python.NewProbe("/usr/local", nil).UserSitePackages(py)
	assert.Equal(t, "/Users/me/Library/Python/2.7/lib/python/site-packages", got)
}

func TestProbe_UserSitePackages_Failure(t *testing.T) {
	py := fakeInterpreter(t, t.TempDir(), "python2.7", "exit 3")
	assert.Empty(t, python.NewProbe("/usr/local", nil).UserSitePackages(py))
}

func TestProbe_InSysPath(t *testing.T) {
	yes := fakeInterpreter(t, t.TempDir(), "python2.7", "exit 0")
	no := fakeInterpreter(t, t.TempDir(), "python2.7", "exit 1")

	p := python.NewProbe("/usr/local", nil)
	assert.True(t, p.InSysPath(yes, "/usr/local/lib/python2.7/site-packages"))
	assert.False(t, p.InSysPath(no, "/usr/local/lib/python2.7/site-packages"))
}

func TestResolver_ResolvesSymlinkedExecutable(t *testing.T) {
	real := filepath.Join(t.TempDir(), "python2.7")
	require.NoError(t, os.WriteFile(real, nil, 0o755))
	link := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.Symlink(real, link))

	bin := t.TempDir()
	fakeInterpreter(t, bin, "python", "echo "+link)

	got, err := python.NewResolver(bin).ResolveDefaultInterpreter()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolver_ChildSeesOriginalPath(t *testing.T) {
	bin := t.TempDir()
	fakeInterpreter(t, bin, "python", `test "$PATH" = '`+bin+`' && echo /bin/sh`)

	got, err := python.NewResolver(bin).ResolveDefaultInterpreter()
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.NotEqual(t, bin, os.Getenv("PATH"), "own environment must not change")
}

func TestResolver_NotFound(t *testing.T) {
	_, err := python.NewResolver(t.TempDir()).ResolveDefaultInterpreter()

	var pf *domain.ProbeFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, "default python", pf.Probe)
}

func TestResolver_InterpreterFails(t *testing.T) {
	bin := t.TempDir()
	fakeInterpreter(t, bin, "python", "exit 1")

	_, err := python.NewResolver(bin).ResolveDefaultInterpreter()
	var pf *domain.ProbeFailure
	assert.True(t, errors.As(err, &pf))
}
