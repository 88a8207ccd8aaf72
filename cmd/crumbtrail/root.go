package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crumbtrail",
		Short: "Breadcrumb bridge for desktop host lifecycle events",
		Long: `crumbtrail wraps host event sources and records a breadcrumb for
every dispatched event before forwarding it.

Sessions are described as YAML scripts and replayed against an in-process
host. Breadcrumbs are printed as JSON lines and/or exported as
OpenTelemetry spans over OTLP/HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newReplayCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "crumbtrail %s (commit: %s, built: %s)\n", version, commit, date)
			return err
		},
	}
}
