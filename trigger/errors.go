package trigger

import "errors"

// Decoding errors.
var (
	// ErrMalformedPayload indicates the event payload is not valid JSON or
	// not the expected document shape.
	ErrMalformedPayload = errors.New("malformed event payload")

	// ErrMissingField indicates a required field (commit id, base or head
	// sha) is absent from the payload.
	ErrMissingField = errors.New("event payload missing required field")

	// ErrNoEvent indicates the environment carries no event metadata
	// (e.g. GITHUB_EVENT_NAME is unset).
	ErrNoEvent = errors.New("no event metadata in environment")
)
