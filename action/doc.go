// Package action publishes step outputs for workflow consumption. On
// GitHub Actions the output lands in the file named by GITHUB_OUTPUT;
// elsewhere it falls back to stdout as name=value.
package action
