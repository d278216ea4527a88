package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/internal/config"
	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/internal/service"
	"github.com/MKhiriev/go-graph-vault/internal/vault"
	"github.com/MKhiriev/go-graph-vault/models"
)

// app is the state shared by all commands. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	cfg      *config.StructuredConfig
	services *service.Services
	log      *logger.Logger
}

func newRootCmd(info models.AppBuildInfo) *cobra.Command {
	a := &app{}
	var flagCfg *config.StructuredConfig

	root := &cobra.Command{
		Use:   "vaultctl",
		Short: "Manage a local token vault for an encrypted content graph",
		Long: `vaultctl works on a vault file that maps secret tokens and certificates
to the permissions a graph server grants their hashes.

It resolves authorization tokens for a scope, reconciles the vault with the
permissions a server reports, and wraps the vault with passwords for export.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(flagCfg)
		},
	}
	flagCfg = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newVersionCmd(info),
		newInitCmd(a),
		newHashCmd(a),
		newKeyHashCmd(a),
		newAuthCmd(a),
		newKeysCmd(a),
		newSyncCmd(a),
		newPruneCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

func (a *app) init(flagCfg *config.StructuredConfig) error {
	a.log = logger.NewLogger("vaultctl")

	cfg, err := config.GetStructuredConfig(flagCfg)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return err
	}

	services, err := service.NewServices(cfg, a.log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	a.cfg = cfg
	a.services = services
	a.log.Debug().
		Str("vault", cfg.Vault.Path).
		Str("hash_algorithm", services.KeyChain.HashAlgorithm()).
		Msg("vaultctl initialized")
	return nil
}

func (a *app) loadVault() (models.Vault, error) {
	return vault.LoadFile(a.cfg.Vault.Path)
}

func (a *app) saveVault(v models.Vault) error {
	if err := vault.SaveFile(a.cfg.Vault.Path, v); err != nil {
		return err
	}
	a.log.Info().Str("vault", a.cfg.Vault.Path).Msg("vault saved")
	return nil
}
