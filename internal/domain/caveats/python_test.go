package caveats_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// pythonEnv installs lib/python2.7/site-packages in the keg and links opt.
func pythonEnv(t *testing.T) (*env, string, string) {
	t.Helper()
	e := newEnv(t)
	e.mkdir(t, "lib", "python2.7", "site-packages")
	e.linkOpt(t)
	site := filepath.Join(e.f.OptPrefix(), "lib", "python2.7", "site-packages")
	managed := filepath.Join(e.prefix, "lib", "python2.7", "site-packages")
	return e, site, managed
}

const userSite = "/Users/me/Library/Python/2.7/lib/python/site-packages"

func userInstructions(managed string) string {
	return "  mkdir -p " + userSite + "\n" +
		"  echo 'import site; site.addsitedir(\"" + managed + "\")' >> " + userSite + "/homebrew.pth\n"
}

func TestPython_NoSitePackages(t *testing.T) {
	e := newEnv(t)
	e.linkOpt(t)
	e.deps.Python = pythonProbe{userSite: userSite}

	assert.Equal(t, "", e.text(t))
}

func TestPython_InterpreterReadsBrewedPthFiles(t *testing.T) {
	e, _, _ := pythonEnv(t)
	e.deps.Python = pythonProbe{readsPth: true, userSite: userSite}

	assert.Equal(t, "", e.text(t))
}

func TestPython_ManagedSiteNotOnSysPath(t *testing.T) {
	e, _, managed := pythonEnv(t)
	e.deps.Python = pythonProbe{userSite: userSite, sysPath: map[string]bool{}}

	want := "Python modules have been installed and Homebrew's site-packages is not\n" +
		"in your Python sys.path, so you will not be able to import the modules\n" +
		"this formula installed. If you plan to develop with these modules,\n" +
		"please run:\n" +
		userInstructions(managed)
	assert.Equal(t, want, e.text(t))
}

func TestPython_OnSysPathWithoutPthFilesSaysNothing(t *testing.T) {
	e, _, managed := pythonEnv(t)
	e.deps.Python = pythonProbe{userSite: userSite, sysPath: map[string]bool{managed: true}}

	assert.Equal(t, "", e.text(t))
}

func TestPython_PthFilesNotProcessed(t *testing.T) {
	e, _, managed := pythonEnv(t)
	e.touch(t, "lib", "python2.7", "site-packages", "foo.pth")
	e.deps.Python = pythonProbe{userSite: userSite, sysPath: map[string]bool{managed: true}}

	want := "This formula installed .pth files to Homebrew's site-packages and your\n" +
		"Python isn't configured to process them, so you will not be able to\n" +
		"import the modules this formula installed. If you plan to develop\n" +
		"with these modules, please run:\n" +
		userInstructions(managed)
	assert.Equal(t, want, e.text(t))
}

func TestPython_KegOnlyBindingsTakePrecedence(t *testing.T) {
	e, site, managed := pythonEnv(t)
	e.f.KegOnly = true
	e.deps.Python = pythonProbe{userSite: userSite, sysPath: map[string]bool{}}

	s := e.text(t)
	assert.Contains(t, s, "If you need Python to find bindings for this keg-only formula, run:\n"+
		"  echo 'import site; site.addsitedir(\""+site+"\")' >> "+filepath.Join(managed, "foo")+".pth\n"+
		userInstructions(managed))
	assert.NotContains(t, s, "Python modules have been installed")
}

func TestPython_KegOnlyAlreadyOnSysPathFallsThrough(t *testing.T) {
	e, site, managed := pythonEnv(t)
	e.f.KegOnly = true
	e.deps.Python = pythonProbe{userSite: userSite, sysPath: map[string]bool{site: true}}

	s := e.text(t)
	assert.NotContains(t, s, "bindings for this keg-only formula")
	assert.Contains(t, s, "Python modules have been installed and Homebrew's site-packages is not\n")
	assert.Contains(t, s, userInstructions(managed))
}

func TestPython_NoUserSiteMeansNoInstructions(t *testing.T) {
	e, _, _ := pythonEnv(t)
	e.deps.Python = pythonProbe{userSite: "", sysPath: map[string]bool{}}

	assert.Equal(t, "", e.text(t))
}

func TestPython_EachInterpreterVersion(t *testing.T) {
	const header = "Python modules have been installed and Homebrew's site-packages is not\n" +
		"in your Python sys.path, so you will not be able to import the modules\n" +
		"this formula installed. If you plan to develop with these modules,\n" +
		"please run:\n"

	managed := func(e *env, version string) string {
		return filepath.Join(e.prefix, "lib", "python"+version, "site-packages")
	}

	tests := []struct {
		name     string
		versions []string
		probe    pythonProbe
		want     func(e *env) string
	}{
		{
			name:     "only 2.7 installed",
			versions: []string{"2.7"},
			probe:    pythonProbe{userSite: userSite, sysPath: map[string]bool{}},
			want: func(e *env) string {
				return header + userInstructions(managed(e, "2.7"))
			},
		},
		{
			name:     "2.7 and 3.4 unable to read .pth files",
			versions: []string{"2.7", "3.4"},
			probe:    pythonProbe{userSite: userSite, sysPath: map[string]bool{}},
			want: func(e *env) string {
				return header + userInstructions(managed(e, "2.7")) + "\n" + userInstructions(managed(e, "3.4"))
			},
		},
		{
			name:     "only 3.4 unable to read .pth files",
			versions: []string{"2.7", "3.4"},
			probe:    pythonProbe{reads: map[string]bool{"python2.7": true}, userSite: userSite, sysPath: map[string]bool{}},
			want: func(e *env) string {
				return header + userInstructions(managed(e, "3.4"))
			},
		},
		{
			name:     "every version reads .pth files",
			versions: []string{"2.7", "3.4"},
			probe:    pythonProbe{readsPth: true, userSite: userSite, sysPath: map[string]bool{}},
			want:     func(*env) string { return "" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			for _, v := range tt.versions {
				e.mkdir(t, "lib", "python"+v, "site-packages")
			}
			e.linkOpt(t)
			e.deps.Python = tt.probe

			got := e.text(t)
			assert.Equal(t, tt.want(e), got)
			if len(tt.versions) == 1 {
				assert.NotContains(t, got, "3.4")
			}
		})
	}
}
