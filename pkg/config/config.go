package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/networks"
	"github.com/denelabs/walletbridge/pkg/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "WALLETBRIDGE"

var (
	Network         = "NETWORK"
	RPCURL          = "RPC_URL"
	ContractID      = "CONTRACT_ID"
	SDKURLs         = "SDK_URLS"
	WalletModuleURL = "WALLET_MODULE_URL"
	LogLevel        = "LOG_LEVEL"
	RPCTimeout      = "RPC_TIMEOUT"

	defaultNetwork    = constants.NetworkTestnet
	defaultLogLevel   = log.InfoLevel.String()
	defaultRPCTimeout = constants.RPCRequestTimeout
	defaultSDKURLs    = strings.Join(constants.SDKSources, ",")
)

// Config is the resolved runtime configuration
type Config struct {
	Network         networks.Network
	RPCURLs         []string
	ContractID      string
	SDKURLs         []string
	WalletModuleURL string
	LogLevel        log.Level
	RPCTimeout      time.Duration
}

// Defaults returns a viper instance holding only the built-in defaults
func Defaults() *viper.Viper {
	v := viper.New()
	v.SetDefault(Network, defaultNetwork)
	v.SetDefault(LogLevel, defaultLogLevel)
	v.SetDefault(RPCTimeout, defaultRPCTimeout)
	v.SetDefault(SDKURLs, defaultSDKURLs)
	v.SetDefault(WalletModuleURL, constants.WalletModuleURL)
	return v
}

// New returns Defaults overlaid with the walletbridge environment.
// The unprefixed NETWORK and CONTRACT_ID variables are honoured as fallbacks.
func New() *viper.Viper {
	v := Defaults()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	_ = v.BindEnv(Network, EnvPrefix+"_"+Network, Network)
	_ = v.BindEnv(ContractID, EnvPrefix+"_"+ContractID, ContractID)
	return v
}

// LoadConfig resolves v against the registry
func LoadConfig(v *viper.Viper, registry *networks.Registry) (*Config, error) {
	network, err := registry.Get(v.GetString(Network))
	if err != nil {
		return nil, fmt.Errorf("error while getting network: %w", err)
	}

	level, err := log.ParseLevel(v.GetString(LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	rpcURLs := network.RPCURLs
	if override := utils.SplitList(v.GetString(RPCURL)); len(override) > 0 {
		rpcURLs = override
	}

	cfg := &Config{
		Network:         network,
		RPCURLs:         rpcURLs,
		ContractID:      strings.TrimSpace(v.GetString(ContractID)),
		SDKURLs:         utils.SplitList(v.GetString(SDKURLs)),
		WalletModuleURL: v.GetString(WalletModuleURL),
		LogLevel:        level,
		RPCTimeout:      v.GetDuration(RPCTimeout),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.RPCURLs) == 0 {
		return fmt.Errorf("missing rpc url, network %s requires %s_%s to be set", c.Network.Name, EnvPrefix, RPCURL)
	}
	for _, u := range c.RPCURLs {
		if err := utils.ValidateRPCURL(u); err != nil {
			return err
		}
	}
	if len(c.SDKURLs) == 0 {
		return fmt.Errorf("at least one sdk url is required")
	}
	if c.RPCTimeout <= 0 {
		return fmt.Errorf("rpc timeout must be positive, got %s", c.RPCTimeout)
	}
	return nil
}
