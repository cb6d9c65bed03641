package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkeg/openkeg/internal/domain"
)

// FileName is the receipt written into every keg at install time.
const FileName = "INSTALL_RECEIPT.json"

// Receipt records how a keg was installed.
type Receipt struct {
	HomebrewVersion     string              `json:"homebrew_version,omitempty"`
	UsedOptions         []string            `json:"used_options"`
	UnusedOptions       []string            `json:"unused_options"`
	BuiltAsBottle       bool                `json:"built_as_bottle"`
	PouredFromBottle    bool                `json:"poured_from_bottle"`
	InstalledOnRequest  bool                `json:"installed_on_request"`
	Time                *int64              `json:"time"`
	HEAD                *string             `json:"HEAD"`
	Compiler            string              `json:"compiler,omitempty"`
	RuntimeDependencies []RuntimeDependency `json:"runtime_dependencies,omitempty"`
	Source              Source              `json:"source"`
}

type RuntimeDependency struct {
	FullName string `json:"full_name"`
	Version  string `json:"version"`
}

type Source struct {
	Path string `json:"path,omitempty"`
	Tap  string `json:"tap,omitempty"`
	Spec string `json:"spec,omitempty"`
}

// Reader implements domain.ReceiptReader over INSTALL_RECEIPT.json files.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Read loads the receipt in kegPath. Returns (nil, nil) if there is none.
func (r *Reader) Read(kegPath string) (*Receipt, error) {
	data, err := os.ReadFile(filepath.Join(kegPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.IOFailure{Op: "read", Path: filepath.Join(kegPath, FileName), Err: err}
	}

	var rec Receipt
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s in %s: %w", FileName, kegPath, err)
	}
	return &rec, nil
}

// BuildOptions returns the options recorded in kegPath's receipt.
func (r *Reader) BuildOptions(kegPath string) (domain.BuildOptions, bool, error) {
	rec, err := r.Read(kegPath)
	if err != nil || rec == nil {
		return domain.BuildOptions{}, false, err
	}
	return domain.BuildOptions{Used: rec.UsedOptions, Unused: rec.UnusedOptions}, true, nil
}
