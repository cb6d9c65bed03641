//go:build !unix

package inspect

import "os"

type fileID struct {
	path string
}

// idOf falls back to the path where inode numbers are unavailable.
func idOf(path string, _ os.FileInfo) fileID {
	return fileID{path: path}
}
