package remote

import (
	"errors"
	"testing"
)

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/wkentaro/darker.git", "github"},
		{"git@github.com:wkentaro/darker.git", "github"},
		{"https://gitlab.com/ns/proj.git", "gitlab"},
		{"https://gitlab.example.com/ns/proj.git", "gitlab"},
	}

	for _, tt := range tests {
		got, err := DetectProvider(tt.url)
		if err != nil {
			t.Errorf("DetectProvider(%q) failed: %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectProvider(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestDetectProvider_Unknown(t *testing.T) {
	_, err := DetectProvider("https://example.com/o/r.git")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("err = %v, want ErrUnknownProvider", err)
	}
}

func TestParseRepoFromURL(t *testing.T) {
	tests := []struct {
		url         string
		owner, repo string
	}{
		{"https://github.com/wkentaro/darker.git", "wkentaro", "darker"},
		{"https://github.com/wkentaro/darker", "wkentaro", "darker"},
		{"git@github.com:wkentaro/darker.git", "wkentaro", "darker"},
		{"git@gitlab.example.com:ns/proj.git", "ns", "proj"},
	}

	for _, tt := range tests {
		owner, repo, err := ParseRepoFromURL(tt.url)
		if err != nil {
			t.Errorf("ParseRepoFromURL(%q) failed: %v", tt.url, err)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("ParseRepoFromURL(%q) = %q/%q, want %q/%q",
				tt.url, owner, repo, tt.owner, tt.repo)
		}
	}
}

func TestParseRepoFromURL_Invalid(t *testing.T) {
	for _, url := range []string{"", "github.com", "git@github.com:too:many:colons"} {
		if _, _, err := ParseRepoFromURL(url); err == nil {
			t.Errorf("ParseRepoFromURL(%q) succeeded, want error", url)
		}
	}
}

func TestListerFromEnv_GitHub(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")

	lister, err := ListerFromEnv("https://github.com/wkentaro/darker.git")
	if err != nil {
		t.Fatalf("ListerFromEnv failed: %v", err)
	}
	if _, ok := lister.(*GitHubLister); !ok {
		t.Errorf("lister = %T, want *GitHubLister", lister)
	}
}

func TestListerFromEnv_GitLabNoToken(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")

	_, err := ListerFromEnv("https://gitlab.com/ns/proj.git")
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}

func TestListerFromEnv_Unknown(t *testing.T) {
	_, err := ListerFromEnv("https://example.com/o/r.git")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("err = %v, want ErrUnknownProvider", err)
	}
}
