// Package remote provides parent lookup through hosting-platform APIs, for
// CI runners that resolve ranges without a local checkout.
//
// Core types:
//   - GitHubLister: parent lookup via the GitHub commits API
//   - GitLabLister: parent lookup via the GitLab commits API
//   - AppAuth: GitHub App authentication (RS256 app JWT exchanged for an
//     installation token)
//
// ListerFromEnv picks the provider from a remote URL and the conventional
// token environment variables (GITHUB_TOKEN, GITLAB_TOKEN, GIT_TOKEN).
package remote
