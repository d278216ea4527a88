package service

import "errors"

var (
	// ErrPermissionInsufficient is returned when no token in scope holds a
	// required action. The caller must refuse the operation.
	ErrPermissionInsufficient = errors.New("permission insufficient")

	// ErrIntegrityMismatch is returned when a recomputed hash differs from
	// the one the caller expected. The write is blocked.
	ErrIntegrityMismatch = errors.New("integrity mismatch")

	// ErrInvalidEntry is returned for action mapper entries that cannot be
	// reconciled, e.g. a delete without an old hash.
	ErrInvalidEntry = errors.New("invalid action entry")

	// ErrMissingHashAlgorithm is returned when entries are reconciled into
	// a host without naming the algorithm their hashes are computed under.
	ErrMissingHashAlgorithm = errors.New("hash algorithm is required")

	ErrKeyNotFound  = errors.New("private key not in key ring")
	ErrNoRecipients = errors.New("no recipients for content key")
)
