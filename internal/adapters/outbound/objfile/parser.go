// Package objfile reads the dynamic library references of native object
// files.
package objfile

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"fmt"
	"io"
	"os"
	"sort"
)

// Parser implements domain.ObjectParser for Mach-O (thin and universal) and
// ELF objects.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// DynamicallyLinkedLibraries returns the install names (Mach-O) or needed
// sonames (ELF) of path, deduplicated and sorted.
func (p *Parser) DynamicallyLinkedLibraries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, 4)
	if _, err := io.ReadFull(f, head); err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}

	var libs []string
	switch {
	case bytes.Equal(head, elfMagic):
		libs, err = elfLibraries(f)
	case isFat(head):
		libs, err = fatLibraries(f)
	default:
		libs, err = machoLibraries(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return uniqueSorted(libs), nil
}

func isFat(head []byte) bool {
	be := uint32(head[0])<<24 | uint32(head[1])<<16 | uint32(head[2])<<8 | uint32(head[3])
	return be == macho.MagicFat
}

func elfLibraries(r io.ReaderAt) ([]string, error) {
	ef, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer ef.Close()
	return ef.ImportedLibraries()
}

func machoLibraries(r io.ReaderAt) ([]string, error) {
	mf, err := macho.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	return mf.ImportedLibraries()
}

func fatLibraries(r io.ReaderAt) ([]string, error) {
	ff, err := macho.NewFatFile(r)
	if err != nil {
		return nil, err
	}
	defer ff.Close()

	var libs []string
	for _, arch := range ff.Arches {
		l, err := arch.ImportedLibraries()
		if err != nil {
			return nil, err
		}
		libs = append(libs, l...)
	}
	return libs, nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
