package git

import "errors"

// Git operation errors.
var (
	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrUnknownRevision indicates the revision does not exist in the
	// repository, typically because a shallow clone does not reach it.
	ErrUnknownRevision = errors.New("unknown revision")
)

// Error wraps a git command error with context.
type Error struct {
	Op     string // Operation that failed (e.g., "list parents")
	Output string // Combined stdout/stderr output
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
