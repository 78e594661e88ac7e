package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/go-git/go-git/v5/storage/memory"

	"unyson/internal/clierr"
	"unyson/internal/util"
)

// GitTags lists the tags published by a remote git repository, naturally
// ordered. A leading "v" is kept as published. Nothing is cloned.
//
// Errors:
//
//   - unyson-error-invalid-request -- when the remote cannot be listed
func GitTags(ctx context.Context, url string) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	listOptions := &git.ListOptions{}
	if isSSH(url) {
		// private repositories rely on the user's SSH agent
		auth, err := ssh.NewSSHAgentAuth("git")
		if err == nil {
			util.Log.Debug("SSH Agent detected, attempting SSH authentication.")
			listOptions.Auth = auth
		} else {
			util.Log.Debugf("SSH Agent not found or failed to initialize, proceeding without explicit SSH auth: %v", err)
		}
	}

	util.Log.Debugf("Listing remote references of %s", url)
	refs, err := remote.ListContext(ctx, listOptions)
	if err != nil {
		return nil, clierr.ErrorInvalidRequest(url, 0, fmt.Errorf("failed to list remote %s: %w", url, err))
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		// annotated tags are advertised twice, once peeled with a ^{} suffix
		tag := strings.TrimSuffix(ref.Name().Short(), "^{}")
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return SortNatural(tags), nil
}

func isSSH(url string) bool {
	return strings.HasPrefix(url, "ssh://") || (strings.HasPrefix(url, "git@") && strings.Contains(url, ":"))
}
