package objfile_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/openkeg/openkeg/internal/adapters/outbound/objfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ReadsRunningBinary(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("native object format not supported on " + runtime.GOOS)
	}
	exe, err := os.Executable()
	require.NoError(t, err)

	libs, err := objfile.New().DynamicallyLinkedLibraries(exe)
	require.NoError(t, err)
	for i := 1; i < len(libs); i++ {
		assert.Less(t, libs[i-1], libs[i], "libraries should be sorted and unique")
	}
}

func TestParser_RejectsNonObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho hi\n"), 0o755))

	_, err := objfile.New().DynamicallyLinkedLibraries(path)
	assert.Error(t, err)
}

func TestParser_ShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny")
	require.NoError(t, os.WriteFile(path, []byte{0x7f}, 0o644))

	_, err := objfile.New().DynamicallyLinkedLibraries(path)
	assert.Error(t, err)
}

func TestParser_MissingFile(t *testing.T) {
	_, err := objfile.New().DynamicallyLinkedLibraries(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
