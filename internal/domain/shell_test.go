package domain_test

import (
	"testing"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseShell(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Shell
	}{
		{"/bin/bash", domain.ShellBash},
		{"/usr/local/bin/zsh", domain.ShellZsh},
		{"fish", domain.ShellFish},
		{"/bin/tcsh", domain.ShellTcsh},
		{"/bin/nushell", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseShell(tt.in), tt.in)
	}
}

func TestShell_PrependPathCommand(t *testing.T) {
	tests := []struct {
		shell domain.Shell
		want  string
	}{
		{domain.ShellBash, `echo 'export PATH="/usr/local/opt/foo/bin:$PATH"' >> ~/.bash_profile`},
		{domain.ShellZsh, `echo 'export PATH="/usr/local/opt/foo/bin:$PATH"' >> ~/.zshrc`},
		{domain.ShellKsh, `echo 'export PATH="/usr/local/opt/foo/bin:$PATH"' >> ~/.kshrc`},
		{domain.ShellCsh, `echo 'setenv PATH /usr/local/opt/foo/bin:$PATH' >> ~/.cshrc`},
		{domain.ShellFish, `echo 'set -g fish_user_paths "/usr/local/opt/foo/bin" $fish_user_paths' >> ~/.config/fish/config.fish`},
		{"", `echo 'export PATH="/usr/local/opt/foo/bin:$PATH"' >> ~/.bash_profile`},
	}
	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shell.PrependPathCommand("/usr/local/opt/foo/bin"))
		})
	}
}

func TestLayoutFor(t *testing.T) {
	bash, ok := domain.LayoutFor(domain.ShellBash)
	assert.True(t, ok)
	assert.Equal(t, "etc/bash_completion.d", bash.CompletionDir)
	assert.Empty(t, bash.FunctionDir)

	zsh, ok := domain.LayoutFor(domain.ShellZsh)
	assert.True(t, ok)
	assert.Equal(t, zsh.CompletionDir, zsh.FunctionDir)

	_, ok = domain.LayoutFor(domain.ShellCsh)
	assert.False(t, ok)
}
