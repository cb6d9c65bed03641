package caveats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openkeg/openkeg/internal/domain/inspect"
)

// service explains how to run the formula's launchd service. Which command
// is suggested depends on whether the descriptor is already linked into
// place and, for login services, whether launchd has it loaded.
func (r *run) service() (string, error) {
	f := r.f

	filename := filepath.Base(f.PlistPath())
	if !f.HasPlist() {
		if r.keg == nil {
			return "", nil
		}
		in := inspect.New(r.keg)
		installed, err := in.PlistInstalled()
		if err != nil || !installed {
			return "", err
		}
		kegPlists, err := in.PlistFiles()
		if err != nil {
			return "", err
		}
		filename = filepath.Base(kegPlists[0])
	}

	destination := r.deps.Config.LaunchAgentsDir
	if f.PlistStartup() {
		destination = r.deps.Config.LaunchDaemonsDir
	}
	plistPath := filepath.Join(expandHome(destination), filename)
	name := f.DisplayName()

	var lines []string
	switch {
	case !symlinkedFile(plistPath):
		if f.PlistStartup() {
			lines = append(lines,
				fmt.Sprintf("To have launchd start %s now and restart at startup:", name),
				fmt.Sprintf("  sudo brew services start %s", name))
		} else {
			lines = append(lines,
				fmt.Sprintf("To have launchd start %s now and restart at login:", name),
				fmt.Sprintf("  brew services start %s", name))
		}
	// Startup services are only visible to a root launchctl, so whether one
	// is running cannot be asked here.
	case f.PlistStartup():
		lines = append(lines,
			fmt.Sprintf("To restart %s after an upgrade:", name),
			fmt.Sprintf("  sudo brew services restart %s", name))
	case r.deps.Services != nil && r.deps.Services.IsLoaded(f.PlistName()):
		lines = append(lines,
			fmt.Sprintf("To restart %s after an upgrade:", name),
			fmt.Sprintf("  brew services restart %s", name))
	default:
		lines = append(lines,
			fmt.Sprintf("To start %s:", name),
			fmt.Sprintf("  brew services start %s", name))
	}

	if manual := f.PlistManual(); manual != "" {
		lines = append(lines,
			"Or, if you don't want/need a background service you can just run:",
			"  "+manual)
	}

	if r.deps.Multiplexer != nil && r.deps.Multiplexer.BreaksServices() {
		lines = append(lines, "", "WARNING: brew services will fail when run under tmux.")
	}

	return strings.Join(lines, "\n") + "\n", nil
}

// symlinkedFile reports whether path is a symlink that resolves to a regular
// file.
func symlinkedFile(path string) bool {
	linfo, err := os.Lstat(path)
	if err != nil || linfo.Mode()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
