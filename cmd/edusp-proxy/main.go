// Command edusp-proxy serves the activity gateway and runs one-off fetches.
//
// Usage:
//
//	edusp-proxy                          Serve HTTP (same as "serve")
//	edusp-proxy serve                    Serve HTTP
//	edusp-proxy fetch --status expiradas Print one normalized response
//	edusp-proxy version                  Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"edusp-proxy/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	rootCmd := &cobra.Command{
		Use:   "edusp-proxy",
		Short: "Gateway for the EDUSP task service",
		Long: `edusp-proxy fronts the EDUSP task service and returns normalized JSON.

Configuration is read from the environment and an optional .env file:

    EDUSP_API_KEY=... edusp-proxy serve`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	rootCmd.AddCommand(
		serve,
		newFetchCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "edusp-proxy %s\n", version.Version)
		},
	}
}
