package commands

import (
	"fmt"
	"time"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/types"
	"github.com/spf13/cobra"
)

func txCmd(a *app) *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tx <hash>",
		Short: "Show the status of a submitted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				res *types.TransactionResponse
				err error
			)
			if wait {
				res, err = a.client.WaitForTransaction(cmd.Context(), args[0], timeout)
			} else {
				res, err = a.client.GetTransaction(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", res.Status)
			if res.Ledger != 0 {
				fmt.Fprintf(out, "Ledger: %d\n", res.Ledger)
			}
			fmt.Fprintf(out, "Latest Ledger: %d\n", res.LatestLedger)
			if res.Status == constants.TxStatusFailed {
				return fmt.Errorf("transaction %s failed", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the transaction leaves NOT_FOUND")
	cmd.Flags().DurationVar(&timeout, "timeout", constants.TransactionWaitTimeout, "how long --wait polls")
	return cmd
}
