// Package version carries the build version, set with
// -ldflags "-X github.com/bnema/mifit-steps-cli/internal/version.Version=...".
package version

var Version = "dev"
