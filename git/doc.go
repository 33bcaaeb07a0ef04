// Package git provides the local-checkout side of commit-range resolution:
// parent lookup, range enumeration, and shallow-clone deepening through git
// plumbing commands.
//
// Core types:
//   - Context: repository handle running plumbing commands
//   - CommandRunner: interface for executing commands (with mock for testing)
//
// Example usage:
//
//	repo, err := git.NewContext("/path/to/repo")
//	parents, err := repo.Parents(ctx, sha)
//	commits, err := repo.RevList(ctx, "abc^1...def")
package git
