package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNoMatch indicates a source answered but no candidate survived the
	// filters. This is a normal outcome, not a failure.
	ErrNoMatch = errors.New("no matching artwork")

	// ErrNoArtwork indicates every source was tried and none produced a result
	ErrNoArtwork = errors.New("all sources exhausted")

	// ErrSourceUnavailable indicates a museum API is unreachable
	ErrSourceUnavailable = errors.New("museum API is unreachable")
)
