//go:build js && wasm

package main

import (
	"io"
	"syscall/js"

	"github.com/denelabs/walletbridge/pkg/config"
	"github.com/denelabs/walletbridge/pkg/env/jsenv"
	"github.com/denelabs/walletbridge/pkg/networks"
	"github.com/denelabs/walletbridge/pkg/submit"
	"github.com/denelabs/walletbridge/pkg/wallet"
	log "github.com/sirupsen/logrus"
)

func main() {
	c := make(chan struct{})

	logger := log.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(jsenv.NewConsoleHook())

	registry := networks.InitGlobalRegistry()
	cfg, err := config.LoadConfig(config.New(), registry)
	if err != nil {
		logger.WithError(err).Error("invalid configuration, using defaults")
		if cfg, err = config.LoadConfig(config.Defaults(), registry); err != nil {
			logger.WithError(err).Fatal("built-in configuration is invalid")
		}
	}
	logger.SetLevel(cfg.LogLevel)

	adapter := wallet.NewAdapter(jsenv.New(),
		wallet.WithLogger(logger),
		wallet.WithSDKSources(cfg.SDKURLs...),
		wallet.WithWalletModule(cfg.WalletModuleURL),
	)
	b := &bridge{
		adapter: adapter,
		flow:    submit.NewFlow(adapter, logger),
		logger:  logger,
		timeout: cfg.RPCTimeout,
	}
	js.Global().Set("walletBridge", b.exports())

	logger.WithField("network", cfg.Network.Name).Info("wallet bridge initialized")
	<-c
}
