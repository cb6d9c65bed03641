package gitinfo

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// TapInfo implements domain.GitInfo using go-git. Paths may point anywhere
// inside a tap's work tree, including at a formula file.
type TapInfo struct{}

func New() *TapInfo {
	return &TapInfo{}
}

func (g *TapInfo) IsGitRepo(path string) bool {
	_, err := open(path)
	return err == nil
}

// CommitHash returns the HEAD revision of the tap containing path.
func (g *TapInfo) CommitHash(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", fmt.Errorf("opening tap repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

func open(path string) (*git.Repository, error) {
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		path = filepath.Dir(path)
	}
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}
