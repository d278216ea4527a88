package service

import (
	"fmt"

	"github.com/MKhiriev/go-graph-vault/internal/config"
	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/internal/logger"
)

type Services struct {
	KeyChain       crypto.KeyChainService
	AuthResolver   AuthResolver
	ActionMapper   ActionMapperService
	Reconciler     Reconciler
	ContentService ContentService
}

func NewServices(cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	keyChain, err := crypto.NewKeyChainService(cfg.App.HashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("error creating key chain: %w", err)
	}

	return &Services{
		KeyChain: keyChain,
		AuthResolver: NewAuthResolverValidationService().
			Wrap(NewAuthResolver(keyChain.HashAlgorithm(), logger)),
		ActionMapper: NewActionMapperService(keyChain.HashAlgorithm(), cfg.App.Workers, logger),
		Reconciler: NewReconcilerValidationService().
			Wrap(NewReconciler(keyChain.HashAlgorithm(), cfg.Policy.ProtectedActions, cfg.App.Workers, logger)),
		ContentService: NewContentService(keyChain, logger),
	}, nil
}
