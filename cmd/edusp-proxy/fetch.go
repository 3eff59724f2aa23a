package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"edusp-proxy/internal/activity"
	"edusp-proxy/internal/config"
	"edusp-proxy/internal/gateway"
	"edusp-proxy/internal/logging"
	"edusp-proxy/internal/version"
)

func newFetchCmd() *cobra.Command {
	var q activity.Query

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and print one normalized response",
		Long: `Fetch runs a single request through the gateway pipeline and prints the JSON
a client would receive.

Examples:
    edusp-proxy fetch
    edusp-proxy fetch --status expiradas
    edusp-proxy fetch --id 12345`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			gw := gateway.FromConfig(cfg, logging.New(cfg.Log), version.Version)
			return runFetch(cmd.Context(), gw, q, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&q.ID, "id", "", "Task id; selects the detail view")
	cmd.Flags().StringVar(&q.Status, "status", "", `List status; "expiradas" selects expired tasks`)

	return cmd
}

func runFetch(ctx context.Context, gw *gateway.Gateway, q activity.Query, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	res := gw.Resolve(ctx, q)

	out, err := json.MarshalIndent(res.Body, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Fprintln(w, string(out))

	if res.Status >= http.StatusInternalServerError {
		if res.Err != nil {
			return fmt.Errorf("%s request failed: %w", res.Intent.Kind, res.Err)
		}
		return fmt.Errorf("%s request failed with status %d", res.Intent.Kind, res.Status)
	}
	return nil
}
