package commands

import (
	"os"

	"github.com/denelabs/walletbridge/pkg/config"
	"github.com/denelabs/walletbridge/pkg/networks"
	"github.com/denelabs/walletbridge/pkg/rpc"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is what every subcommand runs against, built once flags are parsed
type app struct {
	cfg    *config.Config
	client *rpc.Client
	logger *log.Logger
}

func Execute() error {
	return newRootCmd(config.New()).Execute()
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Inspect Stellar networks and Soroban RPC endpoints",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(v, networks.InitGlobalRegistry())
			if err != nil {
				return err
			}

			logger := log.New()
			logger.SetOutput(os.Stderr)
			logger.SetLevel(cfg.LogLevel)

			a.cfg = cfg
			a.logger = logger
			a.client = rpc.NewClient(cfg.RPCURLs,
				rpc.WithLogger(logger),
				rpc.WithTimeout(cfg.RPCTimeout),
				rpc.WithNetwork(cfg.Network.Name),
			)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("network", "", "network name (testnet, futurenet, mainnet)")
	flags.String("rpc-url", "", "comma separated Soroban RPC endpoints, overrides the network defaults")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag(config.Network, flags.Lookup("network"))
	_ = v.BindPFlag(config.RPCURL, flags.Lookup("rpc-url"))
	_ = v.BindPFlag(config.LogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		healthCmd(a),
		networkCmd(a),
		ledgerCmd(a),
		accountCmd(a),
		txCmd(a),
		configCmd(a),
	)
	return root
}
