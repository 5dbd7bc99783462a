package index

import "errors"

// Error taxonomy for the index package: invalid configuration and I/O
// failures are fatal at the API boundary and surfaced as one of these
// sentinels so callers can errors.Is against them.
var (
	ErrUnknownField     = errors.New("index: unknown field")
	ErrUnknownIndexKind = errors.New("index: unknown index kind")
	ErrIndexFileMissing = errors.New("index: persisted file missing")
	ErrCorruptIndex     = errors.New("index: corrupted JSON")
)
