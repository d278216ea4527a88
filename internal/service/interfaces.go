package service

import (
	"context"

	"github.com/MKhiriev/go-graph-vault/models"
)

// AuthResolver selects the minimal authorization material of a vault for
// one scope.
type AuthResolver interface {
	// ResolveAuth returns the "{id}:{secret}" tokens of every scoped hash
	// whose recorded actions intersect req.Required.
	ResolveAuth(ctx context.Context, v models.Vault, scopeURL string, req models.AuthRequest) (models.AuthInfo, error)

	// ResolvePrivateKeys returns the certificates of the scope as a lazily
	// importing key ring.
	ResolvePrivateKeys(ctx context.Context, v models.Vault, scopeURL string, req models.AuthRequest) (*KeyRing, error)
}

// ActionMapperService matches presented tokens against the hashes a node
// reports.
type ActionMapperService interface {
	BuildMapper(ctx context.Context, in MapperInput) (models.ActionMapper, error)
}

// Reconciler turns edited mapper entries into server actions and a vault
// patch.
type Reconciler interface {
	Reconcile(ctx context.Context, entries []models.ActionEntry, mapper models.ActionMapper, opts ReconcileOptions) (models.ReconcileResult, error)
}

// ContentService produces and opens encrypted content payloads.
type ContentService interface {
	EncryptContent(ctx context.Context, in ContentInput) (models.ContentPayload, error)
	DecryptContent(ctx context.Context, in DecryptInput) (DecryptedContent, error)
}

// AuthResolverWrapper defines middleware composition for AuthResolver.
// Implementations wrap an existing AuthResolver to add behavior such as
// validation.
type AuthResolverWrapper interface {
	Wrap(AuthResolver) AuthResolver // returns a decorated AuthResolver applying additional behavior
}

// ReconcilerWrapper defines middleware composition for Reconciler.
type ReconcilerWrapper interface {
	Wrap(Reconciler) Reconciler
}
