package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/internal/service"
	"github.com/MKhiriev/go-graph-vault/internal/vault"
	"github.com/MKhiriev/go-graph-vault/models"
)

type syncFlags struct {
	nodePath string
	scopeURL string
	cluster  string
	content  string
	tokens   []string
	notes    []string
	grant    []string
	revoke   []string
	dryRun   bool
}

func (f *syncFlags) scope() (models.Scope, error) {
	switch {
	case f.cluster != "" && f.content != "":
		return models.Scope{}, errors.New("--cluster and --content are mutually exclusive")
	case f.cluster != "":
		return models.Scope{Kind: models.ScopeCluster, ID: f.cluster}, nil
	case f.content != "":
		return models.Scope{Kind: models.ScopeContent, ID: f.content}, nil
	default:
		return models.Scope{}, errors.New("one of --cluster or --content is required")
	}
}

func newSyncCmd(a *app) *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile one scope of the vault with a server node",
		Long: `Read the node JSON the server returned for a cluster or content, rehash the
configured secrets under the host's current algorithm and drop permissions
the server no longer backs.

--token adds fresh tokens. With --grant the fresh tokens are pushed with the
given actions; the server actions to send are printed as JSON. --revoke
deletes hashes from the server and the vault.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := f.scope()
			if err != nil {
				return err
			}
			node, err := readNode(cmd, f.nodePath)
			if err != nil {
				return err
			}
			v, err := a.loadVault()
			if err != nil {
				return err
			}
			hostKey, err := vault.HostKey(v.BaseURL, f.scopeURL)
			if err != nil {
				return err
			}

			fresh := make([][]byte, 0, len(f.tokens))
			for _, t := range f.tokens {
				fresh = append(fresh, []byte(t))
			}
			mapper, err := a.services.ActionMapper.BuildMapper(cmd.Context(), service.MapperInput{
				Node:        node,
				Vault:       v,
				ScopeURL:    f.scopeURL,
				Scope:       scope,
				FreshTokens: fresh,
			})
			if err != nil {
				return err
			}

			entries := f.edit(mapper, v)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "nothing to reconcile")
				return nil
			}
			res, err := a.services.Reconciler.Reconcile(cmd.Context(), entries, mapper, service.ReconcileOptions{
				HashAlgorithm: hashAlgorithm(v, hostKey, a.services.KeyChain.HashAlgorithm()),
				HostKey:       hostKey,
				Scope:         scope,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err = enc.Encode(res.Actions); err != nil {
				return fmt.Errorf("encode actions: %w", err)
			}
			if f.dryRun {
				return nil
			}
			return a.saveVault(vault.Merge(v, res.Patch))
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.nodePath, "node", "", "node JSON file returned by the server (\"-\" for stdin)")
	fs.StringVarP(&f.scopeURL, "url", "u", "", "endpoint, resolved against the vault base url")
	fs.StringVar(&f.cluster, "cluster", "", "cluster id")
	fs.StringVar(&f.content, "content", "", "content id")
	fs.StringArrayVarP(&f.tokens, "token", "t", nil, "fresh token, repeatable")
	fs.StringArrayVar(&f.notes, "note", nil, "note for the fresh token at the same position")
	fs.StringSliceVarP(&f.grant, "grant", "g", nil, "actions to push for fresh tokens")
	fs.StringArrayVar(&f.revoke, "revoke", nil, "hash to delete, repeatable")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print the server actions without saving the vault")
	_ = cmd.MarkFlagRequired("node")
	return cmd
}

// edit turns the mapper into the entries handed to the reconciler, applying
// --note, --grant and --revoke.
func (f *syncFlags) edit(mapper models.ActionMapper, v models.Vault) []models.ActionEntry {
	notes := make(map[string]string, len(f.notes))
	for i, note := range f.notes {
		if i < len(f.tokens) {
			notes[f.tokens[i]] = note
		}
	}
	grant := models.NewActionSet()
	for _, name := range f.grant {
		grant.Add(models.ParseAction(name))
	}

	revoked := make(map[string]struct{}, len(f.revoke))
	entries := make([]models.ActionEntry, 0, len(mapper)+len(f.revoke))
	for _, hash := range slices.Sorted(maps.Keys(mapper)) {
		e := mapper[hash]
		if slices.Contains(f.revoke, e.OldHash) || slices.Contains(f.revoke, e.NewHash) {
			revoked[e.NewHash] = struct{}{}
			if e.OldHash != "" {
				revoked[e.OldHash] = struct{}{}
				entries = append(entries, models.ActionEntry{OldHash: e.OldHash, Locked: e.Locked, Delete: true})
			}
			continue
		}
		if e.OldHash == "" {
			if note, ok := notes[string(e.Secret)]; ok {
				e.Note = note
			}
			if len(grant) > 0 {
				e.Configured = grant.Clone()
				e.Update = true
			}
		}
		entries = append(entries, e)
	}
	for _, hash := range f.revoke {
		if _, ok := revoked[hash]; !ok {
			_, locked := v.Certificates[hash]
			entries = append(entries, models.ActionEntry{OldHash: hash, Locked: locked, Delete: true})
			revoked[hash] = struct{}{}
		}
	}
	return entries
}

func readNode(cmd *cobra.Command, path string) (models.Node, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return models.Node{}, fmt.Errorf("read node: %w", err)
	}
	var node models.Node
	if err = json.Unmarshal(raw, &node); err != nil {
		return models.Node{}, fmt.Errorf("decode node: %w", err)
	}
	return node, nil
}

// hashAlgorithm is the host's preferred algorithm, or fallback for a
// host that advertises none.
func hashAlgorithm(v models.Vault, hostKey, fallback string) string {
	if algs := v.Hosts[hostKey].HashAlgorithms; len(algs) > 0 {
		return algs[0]
	}
	return fallback
}
