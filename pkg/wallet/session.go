package wallet

import (
	"context"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/networks"
	"github.com/denelabs/walletbridge/pkg/shape"
	"github.com/denelabs/walletbridge/pkg/types"
	"github.com/denelabs/walletbridge/pkg/utils"
)

// Connect asks the wallet for access and returns the user's public key, or ""
func (a *Adapter) Connect(ctx context.Context) string {
	pk, err := a.connect(ctx)
	if err != nil {
		a.log.WithError(err).Warn("connect failed")
		return ""
	}
	a.log.WithField("account", utils.ShortAddress(pk)).Info("wallet connected")
	return pk
}

func (a *Adapter) connect(ctx context.Context) (pk string, err error) {
	defer guard(&err)

	if a.locator.Locate(ctx, constants.ConnectWaitTimeout) == nil {
		a.log.Debug("no provider global after wait, falling back to wallet module")
	}
	api, err := a.API(ctx)
	if err != nil {
		return "", err
	}
	if !api.HasProvider() {
		return "", types.ErrProviderMissing
	}

	if api.Supports(constants.MethodRequestAccess) {
		res, err := api.RequestAccess(ctx)
		if err != nil {
			return "", err
		}
		addr, err := shape.Access(res)
		if err != nil {
			return "", err
		}
		if addr != "" {
			return addr, nil
		}
	} else if api.Supports(constants.MethodIsConnected) {
		res, err := api.IsConnected(ctx)
		if err != nil {
			return "", err
		}
		if connected, known := shape.Connected(res); known && !connected {
			a.log.Info("wallet reports not connected, reading identity anyway")
		}
	}

	return a.identity(ctx, api)
}

// GetPublicKey reads the current identity without requesting access, or returns ""
func (a *Adapter) GetPublicKey(ctx context.Context) string {
	pk, err := a.getPublicKey(ctx)
	if err != nil {
		a.log.WithError(err).Warn("get public key failed")
		return ""
	}
	return pk
}

func (a *Adapter) getPublicKey(ctx context.Context) (pk string, err error) {
	defer guard(&err)

	api, err := a.API(ctx)
	if err != nil {
		return "", err
	}
	return a.identity(ctx, api)
}

func (a *Adapter) identity(ctx context.Context, api *API) (string, error) {
	res, err := api.Identity(ctx)
	if err != nil {
		return "", err
	}
	return shape.Identity(res)
}

// IsConnected reports whether the wallet considers the page connected. It
// never loads the SDK. When the provider does not answer within
// IsConnectedBudget, or answers with an unknown shape, the provider is
// assumed connected. That is an approximation, not a guarantee.
func (a *Adapter) IsConnected(ctx context.Context) bool {
	connected, err := a.isConnected(ctx)
	if err != nil {
		a.log.WithError(err).Warn("is connected check failed")
		return false
	}
	return connected
}

func (a *Adapter) isConnected(ctx context.Context) (connected bool, err error) {
	defer guard(&err)

	check, found := a.connectedCheck()
	if !found {
		a.log.Debug("no wallet provider present")
		return false, nil
	}
	if check == nil {
		return true, nil
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type answer struct {
		value any
		err   error
	}
	done := make(chan answer, 1)
	go func() {
		v, err := check(callCtx)
		done <- answer{v, err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-a.clock.After(constants.IsConnectedBudget):
		a.log.Debug("isConnected did not settle in time, assuming connected")
		return true, nil
	case res := <-done:
		if res.err != nil {
			return false, res.err
		}
		if connected, known := shape.Connected(res.value); known {
			return connected, nil
		}
		return true, nil
	}
}

// connectedCheck resolves isConnected on the memoized API's provider, which
// may be the imported wallet module, or else on the provider globals. It
// never builds the API. A nil check with found set means the provider has no
// isConnected method.
func (a *Adapter) connectedCheck() (check Method, found bool) {
	if api := a.api.Load(); api != nil && api.HasProvider() {
		if !api.Supports(constants.MethodIsConnected) {
			return nil, true
		}
		return api.IsConnected, true
	}

	provider := a.locator.Find()
	if provider == nil {
		return nil, false
	}
	if !provider.Callable(constants.MethodIsConnected) {
		return nil, true
	}
	return func(ctx context.Context, args ...any) (any, error) {
		return provider.Call(ctx, constants.MethodIsConnected, args...)
	}, true
}

// SignTransaction signs xdr for network (TESTNET, or anything else for the
// public network) and returns the signed XDR, or ""
func (a *Adapter) SignTransaction(ctx context.Context, xdr, network string) string {
	signed, err := a.signTransaction(ctx, xdr, network)
	if err != nil {
		a.log.WithError(err).WithField("network", network).Warn("sign transaction failed")
		return ""
	}
	return signed
}

func (a *Adapter) signTransaction(ctx context.Context, xdr, network string) (signed string, err error) {
	defer guard(&err)

	api, err := a.API(ctx)
	if err != nil {
		return "", err
	}
	return Sign(ctx, api, xdr, networks.PassphraseForTag(network))
}

// Sign asks the wallet to sign xdr for passphrase
func Sign(ctx context.Context, api *API, xdr, passphrase string) (string, error) {
	res, err := api.SignTransaction(ctx, xdr, map[string]any{"networkPassphrase": passphrase})
	if err != nil {
		return "", err
	}
	return shape.Signed(res)
}
