package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Context runs git plumbing commands against a repository.
type Context struct {
	repoPath string        // Path to the repository
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// NewContext creates a git context for the repository.
// It validates that the path is a git repository and applies any options.
func NewContext(repoPath string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		runner:   NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	// Verify it's a git repository
	if _, err := g.runGit(context.Background(), "rev-parse", "--git-dir"); err != nil {
		return nil, ErrNotGitRepo
	}

	return g, nil
}

// RepoPath returns the path to the repository.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// Parents returns the ordered parent SHAs of a commit, oldest-declared
// first, as git records them. A root commit yields an empty slice.
func (g *Context) Parents(ctx context.Context, sha string) ([]string, error) {
	out, err := g.runGit(ctx, "rev-list", "--parents", "-n", "1", sha)
	if err != nil {
		if isUnknownRevision(err) {
			return nil, fmt.Errorf("list parents: %w: %s", ErrUnknownRevision, sha)
		}
		return nil, &Error{Op: "list parents", Err: err}
	}

	// Output is "<sha> <parent>..." on a single line.
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return nil, &Error{Op: "list parents", Output: out, Err: fmt.Errorf("empty rev-list output for %s", sha)}
	}
	return fields[1:], nil
}

// RevParse resolves a revision expression to a full SHA.
func (g *Context) RevParse(ctx context.Context, rev string) (string, error) {
	sha, err := g.runGit(ctx, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		if isUnknownRevision(err) {
			return "", fmt.Errorf("rev-parse: %w: %s", ErrUnknownRevision, rev)
		}
		return "", &Error{Op: "rev-parse", Err: err}
	}
	return sha, nil
}

// CommitExists reports whether the revision resolves to a commit object.
func (g *Context) CommitExists(ctx context.Context, sha string) bool {
	_, err := g.runGit(ctx, "cat-file", "-e", sha+"^{commit}")
	return err == nil
}

// RevList enumerates the commits a range expression selects, newest first.
// An empty range expression yields no commits and no error.
func (g *Context) RevList(ctx context.Context, rangeExpr string) ([]string, error) {
	if rangeExpr == "" {
		return nil, nil
	}
	out, err := g.runGit(ctx, "rev-list", rangeExpr)
	if err != nil {
		if isUnknownRevision(err) {
			return nil, fmt.Errorf("rev-list: %w: %s", ErrUnknownRevision, rangeExpr)
		}
		return nil, &Error{Op: "rev-list", Err: err}
	}
	if out == "" {
		return nil, nil
	}
	return strings.Fields(out), nil
}

// MergeBase returns the best common ancestor of two revisions. The CLI
// never needs it; it serves library callers deriving a base endpoint when
// trigger metadata carries none.
func (g *Context) MergeBase(ctx context.Context, a, b string) (string, error) {
	sha, err := g.runGit(ctx, "merge-base", a, b)
	if err != nil {
		return "", &Error{Op: "merge-base", Err: err}
	}
	return sha, nil
}

// IsShallow reports whether the repository is a shallow clone.
// CI checkouts commonly are, leaving pushed commits' parents unreachable.
func (g *Context) IsShallow(ctx context.Context) bool {
	out, err := g.runGit(ctx, "rev-parse", "--is-shallow-repository")
	return err == nil && out == "true"
}

// Deepen fetches additional history from the remote. With depth <= 0 the
// clone is fully unshallowed.
func (g *Context) Deepen(ctx context.Context, remote string, depth int) error {
	args := []string{"fetch"}
	if depth > 0 {
		args = append(args, fmt.Sprintf("--deepen=%d", depth))
	} else {
		args = append(args, "--unshallow")
	}
	args = append(args, remote)

	if _, err := g.runGit(ctx, args...); err != nil {
		return &Error{Op: "deepen", Err: err}
	}
	return nil
}

// GetRemoteURL returns the URL of the specified remote.
func (g *Context) GetRemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := g.runGit(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", &Error{Op: "get remote URL", Err: err}
	}
	return url, nil
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(ctx context.Context, args ...string) (string, error) {
	return g.runner.Run(ctx, g.repoPath, "git", args...)
}

func isUnknownRevision(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unknown revision") ||
		strings.Contains(msg, "bad object") ||
		strings.Contains(msg, "bad revision") ||
		strings.Contains(msg, "not a valid object name")
}
