package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures of a tagging invocation. Every error is
// fatal to the invocation; the tags exist so callers and tests can tell
// the categories apart.
var (
	// ErrTagConfig marks a missing, unreadable or malformed version file
	ErrTagConfig = goerr.NewTag("configuration")

	// ErrTagDuplicate marks a tag name that already exists on the remote
	ErrTagDuplicate = goerr.NewTag("duplicate_tag")

	// ErrTagAuthorization marks a credential that cannot push tags or create releases
	ErrTagAuthorization = goerr.NewTag("authorization")

	// ErrTagTransient marks a network or API failure; a re-run is the recovery path
	ErrTagTransient = goerr.NewTag("transient")
)
