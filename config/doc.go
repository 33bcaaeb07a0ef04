// Package config resolves commit-range configuration from three layers:
// built-in defaults, a .commitrange.yaml file in the repository, and
// COMMITRANGE_* environment variables. Environment wins over file, file
// over defaults. Each key remembers which layer supplied its value.
package config
