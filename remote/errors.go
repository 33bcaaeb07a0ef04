package remote

import "errors"

// Remote lookup errors.
var (
	// ErrUnknownProvider indicates the remote URL matches no supported
	// hosting platform.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrCommitNotFound indicates the platform does not know the commit.
	ErrCommitNotFound = errors.New("commit not found")

	// ErrNoToken indicates no API token was found in the environment.
	ErrNoToken = errors.New("no API token set")
)
