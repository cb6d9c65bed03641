package domain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var macOSCodenames = map[string]string{
	"mavericks":   "10.9",
	"yosemite":    "10.10",
	"el_capitan":  "10.11",
	"sierra":      "10.12",
	"high_sierra": "10.13",
	"mojave":      "10.14",
	"catalina":    "10.15",
	"big_sur":     "11",
	"monterey":    "12",
	"ventura":     "13",
	"sonoma":      "14",
	"sequoia":     "15",
}

// MacOSVersion is the host's macOS release. The zero value means the host is
// not macOS or the release is unknown.
type MacOSVersion struct {
	v *semver.Version
}

// ParseMacOSVersion accepts a dotted release ("10.9") or a codename
// ("mavericks"). An empty string yields the zero value.
func ParseMacOSVersion(s string) (MacOSVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MacOSVersion{}, nil
	}
	if num, ok := macOSCodenames[strings.ToLower(s)]; ok {
		s = num
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return MacOSVersion{}, fmt.Errorf("invalid macOS version %q: %w", s, err)
	}
	return MacOSVersion{v: v}, nil
}

func (m MacOSVersion) Known() bool { return m.v != nil }

// Before reports whether the host runs a release older than the named one.
// An unknown host release is never before anything.
func (m MacOSVersion) Before(codename string) bool {
	if !m.Known() {
		return false
	}
	num, ok := macOSCodenames[codename]
	if !ok {
		num = codename
	}
	other, err := semver.NewVersion(num)
	if err != nil {
		return false
	}
	return m.v.LessThan(other)
}

func (m MacOSVersion) String() string {
	if !m.Known() {
		return ""
	}
	return m.v.Original()
}
