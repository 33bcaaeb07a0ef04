// Package trigger decodes CI event metadata into commitrange trigger
// events.
//
// Two sources are supported:
//
//   - GitHub Actions: FromActionsEnv reads GITHUB_EVENT_NAME and the JSON
//     document at GITHUB_EVENT_PATH. Payloads decode through go-github's
//     event types.
//   - GitLab: FromGitLabEnv reads the CI_* variables of merge-request
//     pipelines; DecodeGitLabWebhook decodes push webhook payloads through
//     go-gitlab's event types.
//
// Event names with no derivation rule map to commitrange.KindOther rather
// than an error; the resolver reports those as undetermined.
package trigger
