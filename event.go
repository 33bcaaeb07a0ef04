package commitrange

// Kind identifies the trigger that produced an Event.
type Kind string

// Trigger kinds.
const (
	// KindPush is a branch push carrying an ordered commit list.
	KindPush Kind = "push"

	// KindPullRequest is a pull or merge request comparing head against base.
	KindPullRequest Kind = "pull_request"

	// KindOther is any trigger with no range derivation rule.
	KindOther Kind = "other"
)

// CommitRef identifies one commit in a push payload.
type CommitRef struct {
	ID string // Full revision hash
}

// PushPayload is the commit list of a push trigger, ordered oldest first.
type PushPayload struct {
	Commits []CommitRef
}

// PullRequestPayload carries the endpoints of a pull-request trigger.
type PullRequestPayload struct {
	BaseSHA string // Target branch tip the request is compared against
	HeadSHA string // Tip of the proposed branch
}

// Event is the trigger metadata the resolver consumes. Exactly one payload
// field is set, matching Kind. Events are value types built fresh per
// invocation and never mutated.
type Event struct {
	Kind Kind

	// Name is the platform's raw event name (e.g. "workflow_dispatch").
	// Informational; set for all kinds.
	Name string

	Push        *PushPayload
	PullRequest *PullRequestPayload
}

// NewPushEvent builds a push event from an ordered commit list.
func NewPushEvent(commits ...CommitRef) Event {
	return Event{
		Kind: KindPush,
		Name: string(KindPush),
		Push: &PushPayload{Commits: commits},
	}
}

// NewPullRequestEvent builds a pull-request event from its endpoints.
func NewPullRequestEvent(baseSHA, headSHA string) Event {
	return Event{
		Kind:        KindPullRequest,
		Name:        string(KindPullRequest),
		PullRequest: &PullRequestPayload{BaseSHA: baseSHA, HeadSHA: headSHA},
	}
}

// NewOtherEvent builds an event for a trigger with no derivation rule.
// The raw platform event name is retained for logging.
func NewOtherEvent(name string) Event {
	return Event{Kind: KindOther, Name: name}
}
