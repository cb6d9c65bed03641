package caveats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openkeg/openkeg/internal/domain/inspect"
)

// kegOnly explains why the formula was not linked and how to use it anyway.
// Each hint is only given for directories the keg actually has.
func (r *run) kegOnly() (string, error) {
	f := r.f
	if !f.KegOnly {
		return "", nil
	}

	dirs, err := existingDirs(
		f.Bin(), f.Sbin(), f.Lib(), f.Include(),
		filepath.Join(f.Lib(), "pkgconfig"), filepath.Join(f.Share(), "pkgconfig"),
	)
	if err != nil {
		return "", err
	}
	bin, sbin, lib, include := dirs[0], dirs[1], dirs[2], dirs[3]
	libPkgconfig, sharePkgconfig := dirs[4], dirs[5]

	var b strings.Builder
	fmt.Fprintf(&b, "This formula is keg-only, which means it was not symlinked into %s.\n", r.deps.Config.Prefix)
	if reason := strings.TrimSpace(f.KegOnlyReason); reason != "" {
		fmt.Fprintf(&b, "\n%s\n", reason)
	}

	if bin || sbin {
		sh := r.deps.Config.UserShell()
		b.WriteString("\nIf you need to have this software first in your PATH run:\n")
		if bin {
			fmt.Fprintf(&b, "  %s\n", sh.PrependPathCommand(f.OptBin()))
		}
		if sbin {
			fmt.Fprintf(&b, "  %s\n", sh.PrependPathCommand(f.OptSbin()))
		}
	}

	if lib || include {
		b.WriteString("\nFor compilers to find this software you may need to set:\n")
		if lib {
			fmt.Fprintf(&b, "    LDFLAGS:  -L%s\n", f.OptLib())
		}
		if include {
			fmt.Fprintf(&b, "    CPPFLAGS: -I%s\n", f.OptInclude())
		}
		if r.which("pkg-config") && (libPkgconfig || sharePkgconfig) {
			b.WriteString("For pkg-config to find this software you may need to set:\n")
			if libPkgconfig {
				fmt.Fprintf(&b, "    PKG_CONFIG_PATH: %s\n", filepath.Join(f.OptLib(), "pkgconfig"))
			}
			if sharePkgconfig {
				fmt.Fprintf(&b, "    PKG_CONFIG_PATH: %s\n", filepath.Join(f.OptShare(), "pkgconfig"))
			}
		}
	}
	return b.String(), nil
}

func existingDirs(paths ...string) ([]bool, error) {
	out := make([]bool, len(paths))
	for i, p := range paths {
		ok, err := inspect.IsDir(p)
		if err != nil {
			return nil, err
		}
		out[i] = ok
	}
	return out, nil
}
