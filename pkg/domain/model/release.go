package model

// ToolchainPin is the parsed content of the version file. The file format
// is "<identifier>:<version>"; only Version is semantically meaningful.
type ToolchainPin struct {
	Identifier string // Text before the first colon (e.g. "leanprover/lean4")
	Version    string // Text after the first colon with all whitespace removed
}

// TagIdentity is the author identity recorded on annotated tags
type TagIdentity struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Release describes the release resource to create on the hosting platform
type Release struct {
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}

// ReleaseResult is the outcome of one tagging invocation
type ReleaseResult struct {
	RunID      string // Unique ID of this invocation
	Skipped    bool   // True when the version file was not part of the latest commit
	Version    string // Extracted version, empty when skipped
	TagName    string // Created tag name, empty when skipped
	ReleaseURL string // HTML URL of the published release, empty when skipped
}
