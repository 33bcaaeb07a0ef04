package remote

import (
	"fmt"
	"os"
	"strings"

	"github.com/wkentaro/commitrange"
)

// DetectProvider identifies the hosting platform from a remote URL.
// Returns "github" or "gitlab", or ErrUnknownProvider.
func DetectProvider(remoteURL string) (string, error) {
	lowered := strings.ToLower(remoteURL)

	if strings.Contains(lowered, "github.com") {
		return "github", nil
	}
	if strings.Contains(lowered, "gitlab") {
		return "gitlab", nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownProvider, remoteURL)
}

// ListerFromEnv creates a parent lister based on remote URL and
// environment. Detects GitHub vs GitLab and uses the matching token env
// var.
//
// Environment variables checked:
//   - GITHUB_TOKEN for GitHub
//   - GITLAB_TOKEN for GitLab
//   - GIT_TOKEN as fallback for either
func ListerFromEnv(remoteURL string) (commitrange.ParentLister, error) {
	platform, err := DetectProvider(remoteURL)
	if err != nil {
		return nil, err
	}

	switch platform {
	case "github":
		// Empty token is fine for public repositories.
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			token = os.Getenv("GIT_TOKEN")
		}
		return NewGitHubListerFromURL(token, remoteURL)

	case "gitlab":
		token := os.Getenv("GITLAB_TOKEN")
		if token == "" {
			token = os.Getenv("GIT_TOKEN")
		}
		if token == "" {
			return nil, fmt.Errorf("%w: GITLAB_TOKEN or GIT_TOKEN", ErrNoToken)
		}
		return NewGitLabListerFromURL(token, remoteURL)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, platform)
	}
}

// ParseRepoFromURL extracts owner and repo from a git remote URL.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	// Handle SSH URLs: git@github.com:owner/repo.git
	if strings.HasPrefix(remoteURL, "git@") {
		parts := strings.Split(remoteURL, ":")
		if len(parts) != 2 {
			return "", "", fmt.Errorf("invalid SSH URL format")
		}
		path := strings.TrimSuffix(parts[1], ".git")
		pathParts := strings.Split(path, "/")
		if len(pathParts) != 2 {
			return "", "", fmt.Errorf("invalid repository path")
		}
		return pathParts[0], pathParts[1], nil
	}

	// Handle HTTPS URLs: https://github.com/owner/repo.git
	remoteURL = strings.TrimPrefix(remoteURL, "https://")
	remoteURL = strings.TrimPrefix(remoteURL, "http://")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	parts := strings.Split(remoteURL, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("invalid URL format")
	}

	// Last two parts are owner/repo
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
