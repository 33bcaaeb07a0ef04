package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/xanzy/go-gitlab"
)

// GitLabLister lists commit parents through the GitLab commits API.
type GitLabLister struct {
	client    *gitlab.Client
	projectID string // Numeric ID or "namespace/project"
}

// NewGitLabLister creates a lister for the project. baseURL is empty for
// gitlab.com, the instance URL for self-hosted GitLab.
func NewGitLabLister(token, baseURL, projectID string) (*GitLabLister, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	var client *gitlab.Client
	var err error
	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
	}
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLabLister{
		client:    client,
		projectID: projectID,
	}, nil
}

// NewGitLabListerFromURL creates a lister from a git remote URL, deriving
// the base URL for self-hosted instances.
// Example: "https://gitlab.com/namespace/project.git"
func NewGitLabListerFromURL(token, remoteURL string) (*GitLabLister, error) {
	owner, repo, err := ParseRepoFromURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}

	var baseURL string
	if !strings.Contains(remoteURL, "gitlab.com") {
		// Self-hosted GitLab
		trimmed := strings.TrimPrefix(remoteURL, "https://")
		trimmed = strings.TrimPrefix(trimmed, "http://")
		trimmed = strings.TrimPrefix(trimmed, "git@")
		if i := strings.IndexAny(trimmed, "/:"); i > 0 {
			baseURL = "https://" + trimmed[:i]
		}
	}

	return NewGitLabLister(token, baseURL, owner+"/"+repo)
}

// Parents returns the ordered parent SHAs of a commit.
func (l *GitLabLister) Parents(ctx context.Context, sha string) ([]string, error) {
	commit, resp, err := l.client.Commits.GetCommit(l.projectID, sha, nil, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, sha)
		}
		return nil, fmt.Errorf("get commit %s: %w", sha, err)
	}

	return commit.ParentIDs, nil
}
