package git

import (
	"context"
	"errors"
	"testing"
)

func TestParents_Linear(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("abc def", nil) // git rev-list --parents -n 1 abc

	g := &Context{repoPath: t.TempDir(), runner: runner}

	parents, err := g.Parents(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Parents failed: %v", err)
	}
	if len(parents) != 1 || parents[0] != "def" {
		t.Errorf("parents = %v, want [def]", parents)
	}
}

func TestParents_Merge(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("abc def 123", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	parents, err := g.Parents(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Parents failed: %v", err)
	}
	if len(parents) != 2 || parents[0] != "def" || parents[1] != "123" {
		t.Errorf("parents = %v, want [def 123]", parents)
	}
}

func TestParents_Root(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("abc", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	parents, err := g.Parents(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Parents failed: %v", err)
	}
	if len(parents) != 0 {
		t.Errorf("parents = %v, want none for root commit", parents)
	}
}

func TestParents_UnknownRevision(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutputError("", "fatal: bad object abc", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	_, err := g.Parents(context.Background(), "abc")
	if !errors.Is(err, ErrUnknownRevision) {
		t.Errorf("err = %v, want ErrUnknownRevision", err)
	}
}

func TestRevList(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("c\nb\na", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	commits, err := g.RevList(context.Background(), "p^1...c")
	if err != nil {
		t.Fatalf("RevList failed: %v", err)
	}
	if len(commits) != 3 || commits[0] != "c" || commits[2] != "a" {
		t.Errorf("commits = %v, want [c b a]", commits)
	}

	if len(runner.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(runner.Calls))
	}
	call := runner.Calls[0]
	if call.Name != "git" || call.Args[0] != "rev-list" || call.Args[1] != "p^1...c" {
		t.Errorf("unexpected invocation: %v %v", call.Name, call.Args)
	}
}

func TestRevList_EmptyRange(t *testing.T) {
	runner := NewSequentialMockRunner()

	g := &Context{repoPath: t.TempDir(), runner: runner}

	commits, err := g.RevList(context.Background(), "")
	if err != nil {
		t.Fatalf("RevList failed: %v", err)
	}
	if commits != nil {
		t.Errorf("commits = %v, want nil for empty range", commits)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("calls = %d, want 0 for empty range", len(runner.Calls))
	}
}

func TestRevParse(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("abc123def456", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	sha, err := g.RevParse(context.Background(), "HEAD")
	if err != nil {
		t.Fatalf("RevParse failed: %v", err)
	}
	if sha != "abc123def456" {
		t.Errorf("sha = %q, want %q", sha, "abc123def456")
	}
}

func TestIsShallow(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("true", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	if !g.IsShallow(context.Background()) {
		t.Error("IsShallow = false, want true")
	}
}

func TestDeepen(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	if err := g.Deepen(context.Background(), "origin", 50); err != nil {
		t.Fatalf("Deepen failed: %v", err)
	}

	call := runner.Calls[0]
	want := []string{"fetch", "--deepen=50", "origin"}
	if len(call.Args) != len(want) {
		t.Fatalf("args = %v, want %v", call.Args, want)
	}
	for i := range want {
		if call.Args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, call.Args[i], want[i])
		}
	}
}

func TestDeepen_Unshallow(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	if err := g.Deepen(context.Background(), "origin", 0); err != nil {
		t.Fatalf("Deepen failed: %v", err)
	}
	if runner.Calls[0].Args[1] != "--unshallow" {
		t.Errorf("args = %v, want --unshallow", runner.Calls[0].Args)
	}
}

func TestCommitExists(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("", nil)
	runner.AddOutputError("", "fatal: Not a valid object name", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	if !g.CommitExists(context.Background(), "abc") {
		t.Error("CommitExists = false, want true")
	}
	if g.CommitExists(context.Background(), "nope") {
		t.Error("CommitExists = true, want false")
	}
}

func TestMergeBase(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("base123", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	sha, err := g.MergeBase(context.Background(), "main", "feature")
	if err != nil {
		t.Fatalf("MergeBase failed: %v", err)
	}
	if sha != "base123" {
		t.Errorf("sha = %q, want %q", sha, "base123")
	}
}

func TestGetRemoteURL(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("git@github.com:o/r.git", nil)

	g := &Context{repoPath: t.TempDir(), runner: runner}

	url, err := g.GetRemoteURL(context.Background(), "origin")
	if err != nil {
		t.Fatalf("GetRemoteURL failed: %v", err)
	}
	if url != "git@github.com:o/r.git" {
		t.Errorf("url = %q, want %q", url, "git@github.com:o/r.git")
	}
}
