package config

import "fmt"

// Version information (set via -ldflags during build).
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is the JSON shape served by /api/version and the get_version tool.
type VersionInfo struct {
	Version   string `json:"version"`
	Build     string `json:"build"`
	GitCommit string `json:"git_commit"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp.
func GetBuild() string {
	return Build
}

// GetGitCommit returns the git commit hash.
func GetGitCommit() string {
	return GitCommit
}

// GetVersionInfo bundles the build variables.
func GetVersionInfo() VersionInfo {
	return VersionInfo{Version: Version, Build: Build, GitCommit: GitCommit}
}

// GetFullVersion returns version with build info.
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}
