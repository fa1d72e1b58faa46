package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func configCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Network: %s (%s)\n", cfg.Network.Name, cfg.Network.Tag)
			fmt.Fprintf(out, "Passphrase: %s\n", cfg.Network.Passphrase)
			fmt.Fprintf(out, "RPC URLs: %s\n", strings.Join(cfg.RPCURLs, ", "))
			fmt.Fprintf(out, "Friendbot: %s\n", orNone(cfg.Network.FriendbotURL))
			fmt.Fprintf(out, "Contract ID: %s\n", orNone(cfg.ContractID))
			fmt.Fprintf(out, "SDK URLs: %s\n", strings.Join(cfg.SDKURLs, ", "))
			fmt.Fprintf(out, "Wallet Module: %s\n", cfg.WalletModuleURL)
			fmt.Fprintf(out, "Log Level: %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "RPC Timeout: %s\n", cfg.RPCTimeout)
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
