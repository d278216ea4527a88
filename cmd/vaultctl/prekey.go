package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/internal/vault"
)

func newExportCmd(a *app) *cobra.Command {
	var passwords []string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the vault wrapped under one prekey per password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.loadVault()
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err = vault.Encode(&buf, v); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, password := range passwords {
				prekey, err := crypto.WrapWithPassword(buf.Bytes(), password, a.cfg.App.Iterations, a.cfg.App.HashAlgorithm)
				if err != nil {
					return fmt.Errorf("error wrapping vault: %w", err)
				}
				fmt.Fprintln(out, prekey)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&passwords, "password", "p", nil, "password to wrap the vault with, repeatable")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		passwords []string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore the vault from a file of prekeys",
		Long: `Read one prekey per line from FILE ("-" for stdin) and try every prekey
with every --password. The first combination that opens becomes the vault.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.cfg.Vault.Path); err == nil && !force {
				return fmt.Errorf("vault %s already exists, use --force to overwrite", a.cfg.Vault.Path)
			}
			prekeys, err := readLines(cmd, args[0])
			if err != nil {
				return err
			}

			secret, err := crypto.UnwrapAny(cmd.Context(), prekeys, passwords,
				a.cfg.App.Iterations, a.cfg.App.HashAlgorithm, a.cfg.App.Workers)
			if err != nil {
				return err
			}
			v, err := vault.Decode(bytes.NewReader(secret))
			if err != nil {
				return err
			}
			if err = a.saveVault(v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported vault for %s\n", v.BaseURL)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&passwords, "password", "p", nil, "candidate password, repeatable")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing vault")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func readLines(cmd *cobra.Command, path string) ([]string, error) {
	in := cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open prekeys: %w", err)
		}
		defer f.Close()
		in = f
	}

	var lines []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read prekeys: %w", err)
	}
	if len(lines) == 0 {
		return nil, errors.New("no prekeys found")
	}
	return lines, nil
}
