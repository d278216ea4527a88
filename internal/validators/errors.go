package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyRequired      = errors.New("at least one required action must be given")
	ErrOverlappingScopes  = errors.New("scope is both included and excluded")
	ErrEmptyBaseURL       = errors.New("vault base url is required")
	ErrEmptySecret        = errors.New("secret is required")
	ErrMissingOldHash     = errors.New("delete requires the old hash")
	ErrConflictingFlags   = errors.New("entry cannot be updated and deleted at once")
	ErrEmptyEntries       = errors.New("entries list cannot be empty")
	ErrDuplicateEntryHash = errors.New("duplicate entry hash")
	ErrInvalidScopeKind   = errors.New("invalid scope kind")
	ErrEmptyScopeID       = errors.New("scope id is required")
)
