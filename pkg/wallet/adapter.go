// Package wallet talks to the Freighter browser wallet through the host
// environment. Adapter discovers the provider, loads the Stellar SDK and
// exposes the session operations.
package wallet

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/ledger"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Method is a bound wallet API method
type Method func(ctx context.Context, args ...any) (any, error)

// API is the normalized wallet interface plus the loaded SDK
type API struct {
	IsConnected     Method
	RequestAccess   Method
	Identity        Method // getPublicKey, or getAddress on newer APIs
	SignTransaction Method
	SDK             *ledger.SDK

	provider  env.Object
	supported map[string]bool
}

// Supports reports whether name is bound to a real provider method rather than a stub
func (a *API) Supports(name string) bool {
	return a.supported[name]
}

// HasProvider reports whether a provider global or wallet module was found
func (a *API) HasProvider() bool {
	return a.provider != nil
}

// Option configures an Adapter
type Option func(*Adapter)

// WithClock replaces the real clock, for tests
func WithClock(clock clockwork.Clock) Option {
	return func(a *Adapter) { a.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Adapter) { a.log = logger }
}

// WithSDKSources overrides the CDN URLs the SDK is loaded from, in order
func WithSDKSources(urls ...string) Option {
	return func(a *Adapter) { a.sdkSources = urls }
}

// WithWalletModule overrides the wallet API module imported when no provider global exists
func WithWalletModule(url string) Option {
	return func(a *Adapter) { a.moduleURL = url }
}

// Adapter owns wallet discovery and the memoized API
type Adapter struct {
	env        env.Environment
	clock      clockwork.Clock
	log        logrus.FieldLogger
	sdkSources []string
	moduleURL  string

	locator *Locator
	loader  *Loader

	mu  sync.Mutex
	api atomic.Pointer[API]
}

// NewAdapter creates an adapter over the host environment
func NewAdapter(e env.Environment, opts ...Option) *Adapter {
	a := &Adapter{
		env:        e,
		clock:      clockwork.NewRealClock(),
		log:        logrus.StandardLogger(),
		sdkSources: constants.SDKSources,
		moduleURL:  constants.WalletModuleURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithField("component", "wallet")
	a.locator = NewLocator(e, a.clock, constants.ProviderPollInterval, constants.ProviderGlobals...)
	a.loader = NewLoader(e, a.clock, a.log, constants.SDKGlobal, constants.ScriptPollInterval, constants.ScriptPollAttempts)
	return a
}

// Locator returns the provider locator
func (a *Adapter) Locator() *Locator {
	return a.locator
}

// API returns the normalized API, building it on first success. A failure to
// load the SDK is not memoized so a later call retries.
func (a *Adapter) API(ctx context.Context) (*API, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if api := a.api.Load(); api != nil {
		return api, nil
	}
	api, err := a.buildAPI(ctx)
	if err != nil {
		return nil, err
	}
	a.api.Store(api)
	return api, nil
}

func (a *Adapter) buildAPI(ctx context.Context) (*API, error) {
	provider := a.locator.Find()
	if provider == nil {
		mod, err := a.env.Import(ctx, a.moduleURL)
		if err != nil {
			a.log.WithError(err).WithField("url", a.moduleURL).Error("wallet api module unavailable")
		} else {
			provider = mod
		}
	}

	if err := a.loader.EnsureLoaded(ctx, a.sdkSources); err != nil {
		a.log.WithError(err).Error("stellar sdk unavailable")
		return nil, err
	}
	sdk, err := ledger.New(a.env.FindGlobal(constants.SDKGlobal))
	if err != nil {
		a.log.WithError(err).Error("stellar sdk unusable")
		return nil, err
	}

	api := &API{SDK: sdk, provider: provider, supported: make(map[string]bool)}
	api.IsConnected = a.bind(api, provider, constants.MethodIsConnected, false)
	api.RequestAccess = a.bind(api, provider, constants.MethodRequestAccess, missingProvider)
	api.SignTransaction = a.bind(api, provider, constants.MethodSignTransaction, missingProvider)
	api.Identity = a.bind(api, provider, constants.MethodGetPublicKey, nil)
	if !api.Supports(constants.MethodGetPublicKey) {
		api.Identity = a.bind(api, provider, constants.MethodGetAddress, missingProvider)
	}

	a.log.WithField("provider", provider != nil).Info("wallet api ready")
	return api, nil
}

var missingProvider = map[string]any{"error": constants.ProviderNotFound}

// bind resolves name on the provider or its default export. Missing methods
// resolve to stub.
func (a *Adapter) bind(api *API, provider env.Object, name string, stub any) Method {
	for _, target := range bindTargets(provider) {
		if target.Callable(name) {
			api.supported[name] = true
			return func(ctx context.Context, args ...any) (any, error) {
				return target.Call(ctx, name, args...)
			}
		}
	}
	return func(context.Context, ...any) (any, error) {
		return stub, nil
	}
}

func bindTargets(provider env.Object) []env.Object {
	if provider == nil {
		return nil
	}
	targets := []env.Object{provider}
	if def, ok := env.ObjectField(provider, "default"); ok {
		targets = append(targets, def)
	}
	return targets
}

// guard turns a panic raised by host code into an error
func guard(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("host panic: %v", r)
	}
}
