package commands

import (
	"fmt"

	"github.com/denelabs/walletbridge/pkg/utils"
	"github.com/spf13/cobra"
)

const stroopsPerLumen = 10_000_000

func accountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account <address>",
		Short: "Show an account's balance and sequence number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.GetAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.logger.WithField("account", utils.ShortAddress(info.AccountID)).Debug("account loaded")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account: %s\n", info.AccountID)
			fmt.Fprintf(out, "Balance: %d.%07d XLM\n", info.Balance/stroopsPerLumen, info.Balance%stroopsPerLumen)
			fmt.Fprintf(out, "Sequence: %d\n", info.Sequence)
			fmt.Fprintf(out, "Last Modified Ledger: %d\n", info.LastModified)
			return nil
		},
	}
}
