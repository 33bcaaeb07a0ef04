package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubLister lists commit parents through the GitHub commits API.
type GitHubLister struct {
	client *github.Client
	owner  string
	repo   string
}

// GitHubOption configures GitHubLister construction.
type GitHubOption func(*githubOptions)

type githubOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the lister at a GitHub Enterprise instance.
func WithBaseURL(baseURL string) GitHubOption {
	return func(o *githubOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client the API client rides on.
// Overrides the token transport; used for custom auth and in tests.
func WithHTTPClient(client *http.Client) GitHubOption {
	return func(o *githubOptions) {
		o.httpClient = client
	}
}

// NewGitHubLister creates a lister for the repository. An empty token is
// allowed for public repositories.
func NewGitHubLister(token, owner, repo string, opts ...GitHubOption) (*GitHubLister, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}

	var o githubOptions
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil && token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if o.baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(o.baseURL, o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("enterprise base URL: %w", err)
		}
	}

	return &GitHubLister{
		client: client,
		owner:  owner,
		repo:   repo,
	}, nil
}

// NewGitHubListerFromURL creates a lister from a git remote URL.
// Example: "https://github.com/wkentaro/darker.git"
func NewGitHubListerFromURL(token, remoteURL string, opts ...GitHubOption) (*GitHubLister, error) {
	owner, repo, err := ParseRepoFromURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}
	return NewGitHubLister(token, owner, repo, opts...)
}

// Parents returns the ordered parent SHAs of a commit.
func (l *GitHubLister) Parents(ctx context.Context, sha string) ([]string, error) {
	commit, resp, err := l.client.Repositories.GetCommit(ctx, l.owner, l.repo, sha, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, sha)
		}
		return nil, fmt.Errorf("get commit %s: %w", sha, err)
	}

	parents := make([]string, 0, len(commit.Parents))
	for _, p := range commit.Parents {
		parents = append(parents, p.GetSHA())
	}
	return parents, nil
}
