package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-graph-vault/internal/validators"
	"github.com/MKhiriev/go-graph-vault/models"
)

// AuthResolverValidationService validates requests before handing them to
// the wrapped AuthResolver.
type AuthResolverValidationService struct {
	inner     AuthResolver
	validator validators.Validator
}

func NewAuthResolverValidationService() AuthResolverWrapper {
	return &AuthResolverValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *AuthResolverValidationService) ResolveAuth(ctx context.Context, vault models.Vault, scopeURL string, req models.AuthRequest) (models.AuthInfo, error) {
	if err := v.validator.Validate(ctx, vault); err != nil {
		return models.AuthInfo{}, fmt.Errorf("error during vault validation before resolving auth: %w", err)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthInfo{}, fmt.Errorf("error during auth request validation: %w", err)
	}

	return v.inner.ResolveAuth(ctx, vault, scopeURL, req)
}

func (v *AuthResolverValidationService) ResolvePrivateKeys(ctx context.Context, vault models.Vault, scopeURL string, req models.AuthRequest) (*KeyRing, error) {
	if err := v.validator.Validate(ctx, vault); err != nil {
		return nil, fmt.Errorf("error during vault validation before resolving keys: %w", err)
	}
	// an empty Required set selects every certificate in scope
	if err := v.validator.Validate(ctx, req, validators.FieldScopes); err != nil {
		return nil, fmt.Errorf("error during auth request validation: %w", err)
	}

	return v.inner.ResolvePrivateKeys(ctx, vault, scopeURL, req)
}

func (v *AuthResolverValidationService) Wrap(wrapper AuthResolver) AuthResolver {
	v.inner = wrapper
	return v
}
