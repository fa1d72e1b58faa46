package networks

import (
	"fmt"

	"github.com/denelabs/walletbridge/pkg/constants"
)

// Network describes a Stellar network and where to reach its Soroban RPC
type Network struct {
	Name         string
	Tag          string   // value callers pass to signTransaction (TESTNET, PUBLIC, ...)
	Passphrase   string   // network passphrase transactions are signed for
	RPCURLs      []string // Soroban RPC endpoints, may be empty for mainnet
	FriendbotURL string
}

// UnsupportedNetworkError is returned when a network is not registered
type UnsupportedNetworkError struct {
	Network string
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported network: %s", e.Network)
}

// Defaults returns the built-in networks
func Defaults() []Network {
	names := []string{constants.NetworkTestnet, constants.NetworkFuturenet, constants.NetworkMainnet}
	out := make([]Network, 0, len(names))
	for _, name := range names {
		out = append(out, Network{
			Name:         name,
			Tag:          constants.NetworkToTag[name],
			Passphrase:   constants.NetworkToPassphrase[name],
			RPCURLs:      append([]string(nil), constants.OfficialRPCEndpoints[name]...),
			FriendbotURL: constants.FriendbotURLs[name],
		})
	}
	return out
}

// PassphraseForTag maps a signing network tag to its passphrase.
// TESTNET selects the test network; every other tag selects the public network.
func PassphraseForTag(tag string) string {
	if tag == constants.NetworkTagTestnet {
		return constants.PassphraseTestnet
	}
	return constants.PassphrasePublic
}
