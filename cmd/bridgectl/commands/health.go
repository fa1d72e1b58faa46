package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Query getHealth on every configured endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			healthy := a.client.HealthyEndpoints(cmd.Context())
			up := make(map[string]bool, len(healthy))
			for _, endpoint := range healthy {
				up[endpoint] = true
			}
			for _, endpoint := range a.client.Endpoints() {
				status := "unhealthy"
				if up[endpoint] {
					status = "healthy"
				}
				fmt.Fprintf(out, "%s: %s\n", endpoint, status)
			}
			if len(healthy) == 0 {
				return fmt.Errorf("no healthy endpoint for %s", a.cfg.Network.Name)
			}
			return nil
		},
	}
}
