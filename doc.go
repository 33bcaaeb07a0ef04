// Package commitrange derives commit-range expressions from CI trigger
// events.
//
// Given the metadata of a push or pull-request trigger, Resolve computes a
// range expression (e.g. "abc123^1...def456") suitable for a revision-walking
// command such as git rev-list or git log. The range isolates the commits
// introduced by the trigger: for pull requests it is the three-dot range
// between base and head, for pushes it anchors on a parent of the oldest
// pushed commit.
//
// The module is organized into subpackages by domain:
//
//   - trigger: decoding CI event metadata (GitHub Actions, GitLab CI) into
//     trigger events
//   - git: local parent lookup through git plumbing commands
//   - remote: parent lookup through the GitHub or GitLab API, for runners
//     without a checkout
//   - config: hierarchical configuration (env > file > defaults)
//   - action: publishing outputs for downstream workflow steps
//
// # Quick Start
//
//	repo, _ := git.NewContext(".")
//	ev, _ := trigger.FromActionsEnv()
//	rng, err := commitrange.New(repo).Resolve(ctx, ev)
//
// See cmd/commit-range for the CLI that wires these together.
package commitrange
