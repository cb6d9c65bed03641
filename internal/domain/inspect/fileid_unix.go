//go:build unix

package inspect

import (
	"os"
	"syscall"
)

// fileID identifies a file independently of the name it was reached by.
type fileID struct {
	dev, ino uint64
	path     string
}

func idOf(path string, info os.FileInfo) fileID {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return fileID{dev: uint64(st.Dev), ino: uint64(st.Ino)}
	}
	return fileID{path: path}
}
