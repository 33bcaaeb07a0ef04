package commitrange

import (
	"context"
	"fmt"
	"log/slog"
)

// ParentLister reports the ordered parent revisions of a commit, as the
// version-control system records them. A merge commit has two or more
// parents, a regular commit one, a root commit none.
//
// Implementations: git.Context (local checkout), remote.GitHubLister and
// remote.GitLabLister (hosting API).
type ParentLister interface {
	Parents(ctx context.Context, sha string) ([]string, error)
}

// Resolver computes commit-range expressions from trigger events.
// The zero value is not usable; construct with New.
type Resolver struct {
	parents ParentLister
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for undetermined results.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver backed by the given parent lister. The lister may
// be nil when only pull-request events will be resolved; push events with
// more than one commit then fail with ErrNoParentLister.
func New(parents ParentLister, opts ...Option) *Resolver {
	r := &Resolver{
		parents: parents,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes the range expression for a trigger event. The result is
// either empty (no range could be determined) or a well-formed expression
// for a revision-walking command. Resolve holds no state across calls:
// identical inputs, including identical parent-query results, yield
// identical output.
//
// Push events with more than one commit anchor the range on the oldest
// commit's K-th parent, where K is the oldest commit's parent count. For a
// linear commit K=1 selects its sole parent; when the oldest commit is a
// merge, K selects the last parent so the range excludes the target
// branch's own history and isolates the commits actually pushed. A root
// commit yields K=0; "<sha>^0" resolves to the commit itself under git
// rev-parse semantics, so the oldest commit is then included via its own
// endpoint.
//
// Single-commit and empty pushes are ambiguous and yield an empty range;
// callers should fall back to other means of detecting changes. Events of
// KindOther yield an empty range and a warning log, never an error.
func (r *Resolver) Resolve(ctx context.Context, ev Event) (string, error) {
	switch ev.Kind {
	case KindPush:
		return r.resolvePush(ctx, ev.Push)

	case KindPullRequest:
		return resolvePullRequest(ev.PullRequest)

	case KindOther:
		r.logger.Warn("no range derivation rule for event; range undetermined",
			"event", ev.Name)
		return "", nil

	default:
		r.logger.Warn("unrecognized event kind; range undetermined",
			"kind", ev.Kind, "event", ev.Name)
		return "", nil
	}
}

func (r *Resolver) resolvePush(ctx context.Context, push *PushPayload) (string, error) {
	if push == nil || len(push.Commits) <= 1 {
		return "", nil
	}

	oldest := push.Commits[0]
	newest := push.Commits[len(push.Commits)-1]
	if oldest.ID == "" || newest.ID == "" {
		return "", fmt.Errorf("resolve push: %w", ErrMissingCommitID)
	}

	if r.parents == nil {
		return "", fmt.Errorf("resolve push: %w", ErrNoParentLister)
	}
	parents, err := r.parents.Parents(ctx, oldest.ID)
	if err != nil {
		return "", fmt.Errorf("list parents of %s: %w", oldest.ID, err)
	}

	return fmt.Sprintf("%s^%d...%s", oldest.ID, len(parents), newest.ID), nil
}

func resolvePullRequest(pr *PullRequestPayload) (string, error) {
	if pr == nil || pr.BaseSHA == "" || pr.HeadSHA == "" {
		return "", fmt.Errorf("resolve pull request: %w", ErrIncompletePullRequest)
	}
	return pr.BaseSHA + "..." + pr.HeadSHA, nil
}
