package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-graph-vault/models"
)

func newVersionCmd(info models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// version works without a readable config
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", orNA(info.BuildVersion()))
			fmt.Fprintf(out, "Build date: %s\n", orNA(info.BuildDate()))
			fmt.Fprintf(out, "Build commit: %s\n", orNA(info.BuildCommit()))
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
