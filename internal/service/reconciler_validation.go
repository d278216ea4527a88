package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-graph-vault/internal/validators"
	"github.com/MKhiriev/go-graph-vault/models"
)

// ReconcilerValidationService validates edited entries before handing them
// to the wrapped Reconciler.
type ReconcilerValidationService struct {
	inner     Reconciler
	validator validators.Validator
}

func NewReconcilerValidationService() ReconcilerWrapper {
	return &ReconcilerValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *ReconcilerValidationService) Reconcile(ctx context.Context, entries []models.ActionEntry, mapper models.ActionMapper, opts ReconcileOptions) (models.ReconcileResult, error) {
	if err := v.validator.Validate(ctx, entries); err != nil {
		return models.ReconcileResult{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if opts.HostKey != "" {
		if err := v.validator.Validate(ctx, opts.Scope); err != nil {
			return models.ReconcileResult{}, fmt.Errorf("error during scope validation: %w", err)
		}
		if opts.HashAlgorithm == "" {
			return models.ReconcileResult{}, fmt.Errorf("%w for host %s", ErrMissingHashAlgorithm, opts.HostKey)
		}
	}

	return v.inner.Reconcile(ctx, entries, mapper, opts)
}

func (v *ReconcilerValidationService) Wrap(wrapper Reconciler) Reconciler {
	v.inner = wrapper
	return v
}
