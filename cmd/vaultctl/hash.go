package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
)

func newHashCmd(a *app) *cobra.Command {
	var algorithms []string

	cmd := &cobra.Command{
		Use:   "hash SECRET...",
		Short: "Print the hash identity of tokens",
		Long: `Print base64(digest(secret)) for every secret. With several --algorithm
values, one line per algorithm is printed, which helps while a host migrates.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(algorithms) == 0 {
				algorithms = []string{a.services.KeyChain.HashAlgorithm()}
			}
			out := cmd.OutOrStdout()
			for _, secret := range args {
				hashes, err := crypto.HashTokenAll([]byte(secret), algorithms)
				if err != nil {
					return err
				}
				for _, name := range algorithms {
					alg, _ := crypto.NormalizeHashAlgorithm(name)
					fmt.Fprintf(out, "%s\t%s\n", alg.Name, hashes[alg.Name])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&algorithms, "algorithm", "a", nil, "hash algorithms (default: configured algorithm)")
	return cmd
}

func newKeyHashCmd(a *app) *cobra.Command {
	var algorithms []string

	cmd := &cobra.Command{
		Use:   "keyhash FILE",
		Short: "Print the public key hash of a PEM or base64 private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(algorithms) == 0 {
				algorithms = []string{a.services.KeyChain.HashAlgorithm()}
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read key: %w", err)
			}
			pub, err := crypto.DerivePublic(string(raw))
			if err != nil {
				return err
			}
			hashes, err := crypto.KeyHashes(pub, algorithms)
			if err != nil {
				return err
			}
			for _, name := range algorithms {
				alg, _ := crypto.NormalizeHashAlgorithm(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", alg.Name, hashes[alg.Name])
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&algorithms, "algorithm", "a", nil, "hash algorithms (default: configured algorithm)")
	return cmd
}
