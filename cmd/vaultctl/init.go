package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/internal/vault"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty vault bound to --base-url",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Vault.BaseURL == "" {
				return errors.New("--base-url is required")
			}
			baseURL, err := vault.HostKey(a.cfg.Vault.BaseURL, "")
			if err != nil {
				return err
			}
			if _, err = os.Stat(a.cfg.Vault.Path); err == nil && !force {
				return fmt.Errorf("vault %s already exists, use --force to overwrite", a.cfg.Vault.Path)
			}

			if err = a.saveVault(vault.New(baseURL)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s for %s\n", a.cfg.Vault.Path, baseURL)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing vault")
	return cmd
}
