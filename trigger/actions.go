package trigger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v57/github"

	"github.com/wkentaro/commitrange"
)

// GitHub Actions event names with a derivation rule.
const (
	EventPush              = "push"
	EventPullRequest       = "pull_request"
	EventPullRequestTarget = "pull_request_target"
)

// FromActionsEnv builds the trigger event from the GitHub Actions
// environment: GITHUB_EVENT_NAME names the event, GITHUB_EVENT_PATH points
// at the webhook payload the run was triggered with.
func FromActionsEnv() (commitrange.Event, error) {
	name := os.Getenv("GITHUB_EVENT_NAME")
	if name == "" {
		return commitrange.Event{}, ErrNoEvent
	}

	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return commitrange.Event{}, fmt.Errorf("event %q: GITHUB_EVENT_PATH not set: %w", name, ErrNoEvent)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return commitrange.Event{}, fmt.Errorf("read event payload: %w", err)
	}

	return Decode(name, payload)
}

// Decode builds the trigger event for a named GitHub event and its raw
// JSON payload. Event names with no derivation rule yield a KindOther
// event and no error; only malformed payloads fail.
func Decode(name string, payload []byte) (commitrange.Event, error) {
	switch name {
	case EventPush:
		return DecodePush(payload)
	case EventPullRequest, EventPullRequestTarget:
		return DecodePullRequest(payload)
	default:
		return commitrange.NewOtherEvent(name), nil
	}
}

// DecodePush decodes a GitHub push payload into a push event. The commit
// list is kept in payload order, oldest first.
func DecodePush(payload []byte) (commitrange.Event, error) {
	var ev github.PushEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return commitrange.Event{}, fmt.Errorf("decode push: %w: %v", ErrMalformedPayload, err)
	}

	commits := make([]commitrange.CommitRef, 0, len(ev.Commits))
	for i, c := range ev.Commits {
		if c.GetID() == "" {
			return commitrange.Event{}, fmt.Errorf("decode push: commit %d: %w", i, ErrMissingField)
		}
		commits = append(commits, commitrange.CommitRef{ID: c.GetID()})
	}

	return commitrange.NewPushEvent(commits...), nil
}

// DecodePullRequest decodes a GitHub pull_request payload into a
// pull-request event carrying the base and head SHAs.
func DecodePullRequest(payload []byte) (commitrange.Event, error) {
	var ev github.PullRequestEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return commitrange.Event{}, fmt.Errorf("decode pull_request: %w: %v", ErrMalformedPayload, err)
	}

	pr := ev.GetPullRequest()
	base := pr.GetBase().GetSHA()
	head := pr.GetHead().GetSHA()
	if base == "" || head == "" {
		return commitrange.Event{}, fmt.Errorf("decode pull_request: %w", ErrMissingField)
	}

	return commitrange.NewPullRequestEvent(base, head), nil
}
