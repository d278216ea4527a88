package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/internal/vault"
)

func newPruneCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove secrets no host references any more",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.loadVault()
			if err != nil {
				return err
			}
			patch := vault.PruneSecrets(v)
			out := cmd.OutOrStdout()
			if patch.IsEmpty() {
				fmt.Fprintln(out, "nothing to prune")
				return nil
			}

			fmt.Fprintf(out, "pruning %d tokens and %d certificates\n", len(patch.Tokens), len(patch.Certificates))
			if dryRun {
				return nil
			}
			return a.saveVault(vault.Merge(v, patch))
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "only report what would be removed")
	return cmd
}
