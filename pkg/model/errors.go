package model

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures of the public operations. Callers should treat
// errors as opaque and branch on tags via goerr.HasTag.
var (
	// ErrTagNotFound marks an absent owner or referenced resource
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagForbidden marks a conversation that is missing, owned by someone
	// else, or no longer active. The cases are deliberately indistinguishable
	// so existence is not leaked.
	ErrTagForbidden = goerr.NewTag("not_found_or_forbidden")

	// ErrTagRetrieval marks an embedding or nearest-neighbor search failure
	ErrTagRetrieval = goerr.NewTag("retrieval_failure")

	// ErrTagGeneration marks a model call failure or malformed usage data
	ErrTagGeneration = goerr.NewTag("generation_failure")

	// ErrTagPersistence marks a store write failure, possibly after a partial
	// write already happened
	ErrTagPersistence = goerr.NewTag("persistence_failure")
)
