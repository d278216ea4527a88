package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/models"
)

// scopeFlags are the include/exclude flags shared by auth and keys.
type scopeFlags struct {
	scopeURL        string
	clusters        []string
	contents        []string
	excludeClusters []string
	excludeContents []string
	required        []string
}

func (f *scopeFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.scopeURL, "url", "u", "", "endpoint, resolved against the vault base url")
	fs.StringSliceVar(&f.clusters, "cluster", nil, "only these clusters")
	fs.StringSliceVar(&f.contents, "content", nil, "only these contents")
	fs.StringSliceVar(&f.excludeClusters, "exclude-cluster", nil, "skip these clusters")
	fs.StringSliceVar(&f.excludeContents, "exclude-content", nil, "skip these contents")
	fs.StringSliceVarP(&f.required, "require", "r", nil, "actions of which at least one must be granted")
}

// request builds the AuthRequest. Include sets stay nil unless their flag
// was given, so an unset flag selects every id.
func (f *scopeFlags) request(cmd *cobra.Command) models.AuthRequest {
	req := models.AuthRequest{
		ExcludeClusters: models.IDSet(f.excludeClusters...),
		ExcludeContents: models.IDSet(f.excludeContents...),
		Required:        models.NewActionSet(),
	}
	if cmd.Flags().Changed("cluster") {
		req.Clusters = models.IDSet(f.clusters...)
	}
	if cmd.Flags().Changed("content") {
		req.Contents = models.IDSet(f.contents...)
	}
	for _, name := range f.required {
		req.Required.Add(models.ParseAction(name))
	}
	return req
}

func newAuthCmd(a *app) *cobra.Command {
	var (
		scope  scopeFlags
		copyIt bool
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Print the authorization tokens for a request",
		Long: `Select every token of the host whose recorded actions intersect --require
and print them as "id:base64(secret)" values joined by commas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.loadVault()
			if err != nil {
				return err
			}
			info, err := a.services.AuthResolver.ResolveAuth(cmd.Context(), v, scope.scopeURL, scope.request(cmd))
			if err != nil {
				return err
			}

			header := strings.Join(info.Tokens, ",")
			if copyIt {
				if err = clipboard.WriteAll(header); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "copied %d tokens\n", len(info.Tokens))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), header)
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().BoolVar(&copyIt, "copy", false, "copy the tokens to the clipboard instead of printing them")
	_ = cmd.MarkFlagRequired("require")
	return cmd
}

func newKeysCmd(a *app) *cobra.Command {
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the certificates usable for a request",
		Long: `List the certificate hashes in scope. Every certificate is imported and
checked against the hash it is stored under.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.loadVault()
			if err != nil {
				return err
			}
			ring, err := a.services.AuthResolver.ResolvePrivateKeys(cmd.Context(), v, scope.scopeURL, scope.request(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, hash := range ring.Hashes() {
				status := "ok"
				if _, err := ring.Get(hash); err != nil {
					status = err.Error()
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", hash, v.Certificates[hash].Note, status)
			}
			return nil
		},
	}
	scope.bind(cmd)
	return cmd
}
