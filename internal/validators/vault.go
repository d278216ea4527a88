package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-graph-vault/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldRequired targets the required action set of an AuthRequest.
	FieldRequired = "required"

	// FieldScopes targets the include/exclude sets of an AuthRequest.
	FieldScopes = "scopes"

	// FieldBaseURL targets the base URL of a Vault.
	FieldBaseURL = "base_url"

	// FieldSecret targets the secret of an ActionEntry.
	FieldSecret = "secret"

	// FieldOldHash targets the delete-requires-old-hash rule of an ActionEntry.
	FieldOldHash = "old_hash"

	// FieldFlags targets the update/delete flag combination of an ActionEntry.
	FieldFlags = "flags"

	// FieldEntries targets the list itself: non-empty, unique hashes.
	FieldEntries = "entries"

	// FieldScope targets the kind and id of a Scope.
	FieldScope = "scope"
)

// VaultValidator implements the Validator interface for the vault domain
// models: AuthRequest, Vault, ActionEntry, []ActionEntry and Scope.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type VaultValidator struct {
}

// NewVaultValidator constructs a new VaultValidator and returns it as the
// Validator interface.
func NewVaultValidator() Validator {
	return &VaultValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AuthRequest:
		return v.validateAuthRequest(ctx, value, fields...)
	case *models.AuthRequest:
		return v.validateAuthRequest(ctx, *value, fields...)

	case models.Vault:
		return v.validateVault(ctx, value, fields...)
	case *models.Vault:
		return v.validateVault(ctx, *value, fields...)

	case models.ActionEntry:
		return v.validateActionEntry(ctx, value, fields...)
	case *models.ActionEntry:
		return v.validateActionEntry(ctx, *value, fields...)

	case []models.ActionEntry:
		return v.validateActionEntries(ctx, value, fields...)

	case models.Scope:
		return v.validateScope(ctx, value, fields...)
	case *models.Scope:
		return v.validateScope(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateAuthRequest validates an AuthRequest.
//
// Default validated fields (when none specified): Required, Scopes.
func (v *VaultValidator) validateAuthRequest(ctx context.Context, req models.AuthRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRequired, FieldScopes}
	}

	for _, f := range fields {
		switch f {
		case FieldRequired:
			if len(req.Required) == 0 {
				return ErrEmptyRequired
			}
		case FieldScopes:
			if err := checkOverlap(req.Clusters, req.ExcludeClusters); err != nil {
				return fmt.Errorf("clusters: %w", err)
			}
			if err := checkOverlap(req.Contents, req.ExcludeContents); err != nil {
				return fmt.Errorf("contents: %w", err)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// checkOverlap rejects ids that are explicitly included and excluded; the
// exclude would silently win.
func checkOverlap(include, exclude map[string]struct{}) error {
	for id := range include {
		if _, ok := exclude[id]; ok {
			return fmt.Errorf("%w: %q", ErrOverlappingScopes, id)
		}
	}
	return nil
}

// validateVault validates a Vault.
//
// Default validated fields (when none specified): BaseURL.
func (v *VaultValidator) validateVault(ctx context.Context, vault models.Vault, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBaseURL}
	}

	for _, f := range fields {
		switch f {
		case FieldBaseURL:
			if vault.BaseURL == "" {
				return ErrEmptyBaseURL
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateActionEntry validates a single ActionEntry.
//
// Default validated fields (when none specified): Secret, OldHash, Flags.
// A secret is only required for entries that are not deleted.
func (v *VaultValidator) validateActionEntry(ctx context.Context, e models.ActionEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSecret, FieldOldHash, FieldFlags}
	}

	for _, f := range fields {
		switch f {
		case FieldSecret:
			if !e.Delete && len(e.Secret) == 0 {
				return ErrEmptySecret
			}
		case FieldOldHash:
			if e.Delete && e.OldHash == "" {
				return ErrMissingOldHash
			}
		case FieldFlags:
			if e.Delete && e.Update {
				return ErrConflictingFlags
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateActionEntries validates a list of entries handed to the
// reconciler. FieldEntries checks the list; every other field is applied
// to each entry.
func (v *VaultValidator) validateActionEntries(ctx context.Context, entries []models.ActionEntry, fields ...string) error {
	entryFields := make([]string, 0, len(fields))
	checkList := len(fields) == 0
	for _, f := range fields {
		if f == FieldEntries {
			checkList = true
			continue
		}
		entryFields = append(entryFields, f)
	}

	if checkList {
		if len(entries) == 0 {
			return ErrEmptyEntries
		}
		seen := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			if e.NewHash == "" {
				continue
			}
			if _, dup := seen[e.NewHash]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateEntryHash, e.NewHash)
			}
			seen[e.NewHash] = struct{}{}
		}
	}
	if len(fields) > 0 && len(entryFields) == 0 {
		return nil
	}

	for i, e := range entries {
		if err := v.validateActionEntry(ctx, e, entryFields...); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// validateScope validates a Scope.
func (v *VaultValidator) validateScope(ctx context.Context, scope models.Scope, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldScope}
	}

	for _, f := range fields {
		switch f {
		case FieldScope:
			if scope.Kind != models.ScopeCluster && scope.Kind != models.ScopeContent {
				return ErrInvalidScopeKind
			}
			if scope.ID == "" {
				return ErrEmptyScopeID
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}
