package commitrange

import "errors"

// Resolution errors.
var (
	// ErrMissingCommitID indicates a push payload contained a commit
	// without a revision id.
	ErrMissingCommitID = errors.New("push commit without id")

	// ErrIncompletePullRequest indicates a pull-request payload is missing
	// the base or head revision.
	ErrIncompletePullRequest = errors.New("pull request payload missing base or head sha")

	// ErrNoParentLister indicates a push range required a parent lookup but
	// no ParentLister was configured.
	ErrNoParentLister = errors.New("no parent lister configured")
)
