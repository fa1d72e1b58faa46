package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func networkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Show the network an endpoint serves and check its passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.GetNetwork(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Passphrase: %s\n", res.Passphrase)
			fmt.Fprintf(out, "Protocol Version: %d\n", res.ProtocolVersion)
			friendbot := res.FriendbotURL
			if friendbot == "" {
				friendbot = a.cfg.Network.FriendbotURL
			}
			if friendbot != "" {
				fmt.Fprintf(out, "Friendbot: %s\n", friendbot)
			}
			if res.Passphrase != a.cfg.Network.Passphrase {
				return fmt.Errorf("endpoint serves %q, expected %s (%q)", res.Passphrase, a.cfg.Network.Name, a.cfg.Network.Passphrase)
			}
			return nil
		},
	}
}

func ledgerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show the latest ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.GetLatestLedger(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sequence: %d\n", res.Sequence)
			fmt.Fprintf(out, "Hash: %s\n", res.ID)
			fmt.Fprintf(out, "Protocol Version: %d\n", res.ProtocolVersion)
			return nil
		},
	}
}
