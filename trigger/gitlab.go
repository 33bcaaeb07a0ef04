package trigger

import (
	"fmt"
	"os"

	"github.com/xanzy/go-gitlab"

	"github.com/wkentaro/commitrange"
)

// GitLab pipeline sources with a derivation rule.
const (
	PipelineSourceMergeRequest = "merge_request_event"
	PipelineSourcePush         = "push"
)

// FromGitLabEnv builds the trigger event from GitLab CI predefined
// variables. Merge-request pipelines map to a pull-request event using the
// diff base and source branch SHAs.
//
// Push pipelines expose only the before/after endpoints, not the pushed
// commit list, so they map to KindOther from the environment alone; the
// webhook payload path (DecodeGitLabWebhook) carries the full list.
func FromGitLabEnv() (commitrange.Event, error) {
	source := os.Getenv("CI_PIPELINE_SOURCE")
	if source == "" {
		return commitrange.Event{}, ErrNoEvent
	}

	if source != PipelineSourceMergeRequest {
		return commitrange.NewOtherEvent(source), nil
	}

	base := os.Getenv("CI_MERGE_REQUEST_DIFF_BASE_SHA")
	head := os.Getenv("CI_MERGE_REQUEST_SOURCE_BRANCH_SHA")
	if head == "" {
		head = os.Getenv("CI_COMMIT_SHA")
	}
	if base == "" || head == "" {
		return commitrange.Event{}, fmt.Errorf("merge request pipeline: %w", ErrMissingField)
	}

	return commitrange.NewPullRequestEvent(base, head), nil
}

// DecodeGitLabWebhook builds the trigger event from a GitLab webhook
// payload. Push hooks decode through go-gitlab's event types and keep the
// commit list in payload order. Hook types with no derivation rule yield a
// KindOther event.
func DecodeGitLabWebhook(eventType gitlab.EventType, payload []byte) (commitrange.Event, error) {
	if eventType != gitlab.EventTypePush {
		// Merge-request hooks do not carry the diff base sha; merge
		// request pipelines are handled via FromGitLabEnv instead.
		return commitrange.NewOtherEvent(string(eventType)), nil
	}

	raw, err := gitlab.ParseWebhook(eventType, payload)
	if err != nil {
		return commitrange.Event{}, fmt.Errorf("decode gitlab push: %w: %v", ErrMalformedPayload, err)
	}

	ev, ok := raw.(*gitlab.PushEvent)
	if !ok {
		return commitrange.Event{}, fmt.Errorf("decode gitlab push: %w: unexpected payload type %T", ErrMalformedPayload, raw)
	}

	commits := make([]commitrange.CommitRef, 0, len(ev.Commits))
	for i, c := range ev.Commits {
		if c.ID == "" {
			return commitrange.Event{}, fmt.Errorf("decode gitlab push: commit %d: %w", i, ErrMissingField)
		}
		commits = append(commits, commitrange.CommitRef{ID: c.ID})
	}

	return commitrange.NewPushEvent(commits...), nil
}
