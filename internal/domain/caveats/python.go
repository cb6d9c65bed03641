package caveats

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var sitePackagesPattern = regexp.MustCompile(`lib/(python(\d+\.\d+))/site-packages`)

type sitePackages struct {
	path    string
	python  string // e.g. "python2.7"
	version string // e.g. "2.7"
}

// homebrewSitePackages is the shared site-packages of the prefix for a
// Python version.
func (r *run) homebrewSitePackages(version string) string {
	return filepath.Join(r.deps.Config.Prefix, "lib", "python"+version, "site-packages")
}

// python explains how to make the formula's Python modules importable. It
// says nothing when every interpreter already processes the prefix's .pth
// files.
func (r *run) python() (string, error) {
	if r.keg == nil || r.deps.Python == nil {
		return "", nil
	}
	f := r.f
	probe := r.deps.Python

	matches, err := filepath.Glob(filepath.Join(f.OptPrefix(), "lib", "python*.*", "site-packages"))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)

	var sites []sitePackages
	for _, m := range matches {
		groups := sitePackagesPattern.FindStringSubmatch(filepath.ToSlash(m))
		if groups == nil {
			continue
		}
		sites = append(sites, sitePackages{path: m, python: groups[1], version: groups[2]})
	}
	if len(sites) == 0 {
		return "", nil
	}

	// Instructions that make each interpreter add the prefix's site-packages
	// through a user-level .pth file.
	var instructions []string
	for _, s := range sites {
		if probe.ReadsBrewedPthFiles(s.python) {
			continue
		}
		userSite := probe.UserSitePackages(s.python)
		if userSite == "" {
			continue
		}
		instructions = append(instructions, fmt.Sprintf(
			"  mkdir -p %s\n  echo 'import site; site.addsitedir(\"%s\")' >> %s\n",
			userSite, r.homebrewSitePackages(s.version), filepath.Join(userSite, "homebrew.pth")))
	}
	siteInstructions := strings.Join(instructions, "\n")

	var output []string

	if f.KegOnly {
		var commands []string
		for _, s := range sites {
			if probe.InSysPath(s.python, s.path) {
				continue
			}
			commands = append(commands, fmt.Sprintf(
				"  echo 'import site; site.addsitedir(\"%s\")' >> %s.pth",
				s.path, filepath.Join(r.homebrewSitePackages(s.version), f.Name)))
		}
		if len(commands) > 0 {
			output = append(output, "If you need Python to find bindings for this keg-only formula, run:")
			output = append(output, commands...)
			if siteInstructions != "" {
				output = append(output, siteInstructions)
			}
			return strings.Join(output, "\n"), nil
		}
	}

	if siteInstructions == "" {
		return "", nil
	}

	missingFromSysPath := false
	for _, s := range sites {
		if !probe.InSysPath(s.python, r.homebrewSitePackages(s.version)) {
			missingFromSysPath = true
			break
		}
	}

	if missingFromSysPath {
		output = append(output, strings.Join([]string{
			"Python modules have been installed and Homebrew's site-packages is not",
			"in your Python sys.path, so you will not be able to import the modules",
			"this formula installed. If you plan to develop with these modules,",
			"please run:",
		}, "\n"))
	} else {
		var pthFiles []string
		for _, s := range sites {
			found, err := filepath.Glob(filepath.Join(s.path, "*.pth"))
			if err != nil {
				return "", err
			}
			pthFiles = append(pthFiles, found...)
		}
		if len(pthFiles) == 0 {
			return "", nil
		}
		output = append(output, strings.Join([]string{
			"This formula installed .pth files to Homebrew's site-packages and your",
			"Python isn't configured to process them, so you will not be able to",
			"import the modules this formula installed. If you plan to develop",
			"with these modules, please run:",
		}, "\n"))
	}

	output = append(output, siteInstructions)
	return strings.Join(output, "\n"), nil
}
