package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/env/memenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectIdentityShapes(t *testing.T) {
	tests := []struct {
		name     string
		provider map[string]any
		want     string
		warnings int
	}{
		{
			name: "requestAccess returns address",
			provider: map[string]any{
				"requestAccess": memenv.Returning(map[string]any{"address": testKey}),
			},
			want: testKey,
		},
		{
			name: "requestAccess grants then getPublicKey string",
			provider: map[string]any{
				"requestAccess": memenv.Returning(map[string]any{"address": ""}),
				"getPublicKey":  memenv.Returning(testKey),
			},
			want: testKey,
		},
		{
			name: "legacy isConnected then getPublicKey object",
			provider: map[string]any{
				"isConnected":  memenv.Returning(true),
				"getPublicKey": memenv.Returning(map[string]any{"publicKey": testKey}),
			},
			want: testKey,
		},
		{
			name: "not connected is not fatal",
			provider: map[string]any{
				"isConnected": memenv.Returning(map[string]any{"isConnected": false}),
				"getAddress":  memenv.Returning(map[string]any{"address": testKey}),
			},
			want: testKey,
		},
		{
			name: "access denied",
			provider: map[string]any{
				"requestAccess": memenv.Returning(map[string]any{"error": "denied"}),
				"getAddress":    memenv.Returning(map[string]any{"address": testKey}),
			},
			want:     "",
			warnings: 1,
		},
		{
			name: "identity error",
			provider: map[string]any{
				"getAddress": memenv.Returning(map[string]any{"address": "", "error": map[string]any{"message": "locked"}}),
			},
			want:     "",
			warnings: 1,
		},
		{
			name: "requestAccess throws",
			provider: map[string]any{
				"requestAccess": memenv.Failing(errors.New("extension crashed")),
			},
			want:     "",
			warnings: 1,
		},
		{
			name:     "provider without identity methods",
			provider: map[string]any{},
			want:     "",
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.install(constants.ProviderGlobalModern, tt.provider)

			got := h.adapter.Connect(context.Background())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.warnings, h.warnings())
		})
	}
}

func TestConnectWithoutProvider(t *testing.T) {
	h := newHarness(t)

	result := make(chan string)
	go func() {
		result <- h.adapter.Connect(context.Background())
	}()

	h.clock.BlockUntil(2)
	h.clock.Advance(constants.ConnectWaitTimeout)

	assert.Equal(t, "", <-result)
	assert.Equal(t, 1, h.warnings())
	assert.Equal(t, []string{walletModule}, h.env.Imported())
}

func TestConnectProviderInjectedLate(t *testing.T) {
	h := newHarness(t)

	result := make(chan string)
	go func() {
		result <- h.adapter.Connect(context.Background())
	}()

	h.clock.BlockUntil(2)
	h.install(constants.ProviderGlobalLegacy, map[string]any{
		"getPublicKey": memenv.Returning(testKey),
	})
	h.clock.Advance(constants.ProviderPollInterval)

	assert.Equal(t, testKey, <-result)
	assert.Zero(t, h.warnings())
	assert.Empty(t, h.env.Imported())
}

func TestGetPublicKey(t *testing.T) {
	h := newHarness(t)
	provider := h.install(constants.ProviderGlobalModern, map[string]any{
		"requestAccess": memenv.Returning(map[string]any{"error": "should not be called"}),
		"getAddress":    memenv.Returning(map[string]any{"address": testKey}),
	})

	assert.Equal(t, testKey, h.adapter.GetPublicKey(context.Background()))
	assert.Zero(t, provider.Calls(constants.MethodRequestAccess))
	assert.Zero(t, h.warnings())
}

func TestGetPublicKeyWithoutSDK(t *testing.T) {
	h := newBareHarness(t)
	h.install(constants.ProviderGlobalModern, map[string]any{
		"getPublicKey": memenv.Returning(testKey),
	})

	assert.Equal(t, "", h.adapter.GetPublicKey(context.Background()))
	assert.Equal(t, 1, h.warnings())
}

func TestIsConnected(t *testing.T) {
	tests := []struct {
		name     string
		provider map[string]any
		want     bool
		warnings int
	}{
		{name: "bool true", provider: map[string]any{"isConnected": memenv.Returning(true)}, want: true},
		{name: "bool false", provider: map[string]any{"isConnected": memenv.Returning(false)}, want: false},
		{name: "object form", provider: map[string]any{"isConnected": memenv.Returning(map[string]any{"isConnected": true})}, want: true},
		{name: "object form false", provider: map[string]any{"isConnected": memenv.Returning(map[string]any{"isConnected": false})}, want: false},
		{name: "unknown shape assumed connected", provider: map[string]any{"isConnected": memenv.Returning("yes")}, want: true},
		{name: "no isConnected method", provider: map[string]any{"getPublicKey": memenv.Returning(testKey)}, want: true},
		{name: "throws", provider: map[string]any{"isConnected": memenv.Failing(errors.New("boom"))}, want: false, warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newBareHarness(t)
			h.install(constants.ProviderGlobalLegacy, tt.provider)

			assert.Equal(t, tt.want, h.adapter.IsConnected(context.Background()))
			assert.Equal(t, tt.warnings, h.warnings())
			assert.Empty(t, h.env.Appended(), "isConnected never loads the SDK")
		})
	}
}

func TestIsConnectedWithoutProvider(t *testing.T) {
	h := newBareHarness(t)

	assert.False(t, h.adapter.IsConnected(context.Background()))
	assert.Zero(t, h.warnings())
	assert.Empty(t, h.env.Imported())
}

func TestIsConnectedUsesImportedModule(t *testing.T) {
	tests := []struct {
		name   string
		module map[string]any
		want   bool
	}{
		{
			name: "module reports connected",
			module: map[string]any{
				"isConnected":   memenv.Returning(map[string]any{"isConnected": true}),
				"requestAccess": memenv.Returning(map[string]any{"address": testKey}),
				"getAddress":    memenv.Returning(map[string]any{"address": testKey}),
			},
			want: true,
		},
		{
			name: "module reports disconnected",
			module: map[string]any{
				"isConnected": memenv.Returning(map[string]any{"isConnected": false}),
				"getAddress":  memenv.Returning(map[string]any{"address": testKey}),
			},
			want: false,
		},
		{
			name:   "module without isConnected",
			module: map[string]any{"getAddress": memenv.Returning(map[string]any{"address": testKey})},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.env.OnImport(walletModule, memenv.NewObject(tt.module), nil)

			_, err := h.adapter.API(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.want, h.adapter.IsConnected(context.Background()))
			assert.Zero(t, h.warnings())
		})
	}
}

func TestIsConnectedAfterConnectThroughModule(t *testing.T) {
	h := newHarness(t)
	h.env.OnImport(walletModule, memenv.NewObject(map[string]any{
		"isConnected":   memenv.Returning(map[string]any{"isConnected": true}),
		"requestAccess": memenv.Returning(map[string]any{"address": testKey}),
	}), nil)

	result := make(chan string)
	go func() {
		result <- h.adapter.Connect(context.Background())
	}()
	h.clock.BlockUntil(2)
	h.clock.Advance(constants.ConnectWaitTimeout)

	require.Equal(t, testKey, <-result)
	assert.True(t, h.adapter.IsConnected(context.Background()))
}

func TestIsConnectedSlowProviderAssumedConnected(t *testing.T) {
	h := newBareHarness(t)
	h.install(constants.ProviderGlobalModern, map[string]any{"isConnected": memenv.Blocking()})

	result := make(chan bool)
	go func() {
		result <- h.adapter.IsConnected(context.Background())
	}()

	h.clock.BlockUntil(1)
	h.clock.Advance(constants.IsConnectedBudget)

	assert.True(t, <-result)
	assert.Zero(t, h.warnings())
}

func TestSignTransactionPassphrase(t *testing.T) {
	tests := []struct {
		network string
		want    string
	}{
		{constants.NetworkTagTestnet, constants.PassphraseTestnet},
		{constants.NetworkTagPublic, constants.PassphrasePublic},
		{"", constants.PassphrasePublic},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			h := newHarness(t)
			var gotXDR string
			var gotOpts any
			h.install(constants.ProviderGlobalModern, map[string]any{
				"signTransaction": memenv.Func(func(_ context.Context, args ...any) (any, error) {
					gotXDR, _ = args[0].(string)
					gotOpts = args[1]
					return map[string]any{"signedTxXdr": "AAAAsigned"}, nil
				}),
			})

			signed := h.adapter.SignTransaction(context.Background(), "AAAAunsigned", tt.network)
			assert.Equal(t, "AAAAsigned", signed)
			assert.Equal(t, "AAAAunsigned", gotXDR)
			assert.Equal(t, map[string]any{"networkPassphrase": tt.want}, gotOpts)
		})
	}
}

func TestSignTransactionResultShapes(t *testing.T) {
	tests := []struct {
		name     string
		result   any
		want     string
		warnings int
	}{
		{name: "string", result: "AAAAsigned", want: "AAAAsigned"},
		{name: "signedTxXdr", result: map[string]any{"signedTxXdr": "AAAAsigned", "signerAddress": testKey}, want: "AAAAsigned"},
		{name: "denied", result: map[string]any{"error": "denied"}, want: "", warnings: 1},
		{name: "unknown", result: map[string]any{"ok": true}, want: "", warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.install(constants.ProviderGlobalModern, map[string]any{
				"signTransaction": memenv.Returning(tt.result),
			})

			assert.Equal(t, tt.want, h.adapter.SignTransaction(context.Background(), "AAAA", constants.NetworkTagTestnet))
			assert.Equal(t, tt.warnings, h.warnings())
		})
	}
}

func TestSignTransactionWithoutProvider(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "", h.adapter.SignTransaction(context.Background(), "AAAA", constants.NetworkTagTestnet))
	require.Equal(t, 1, h.warnings())
	assert.Contains(t, h.hook.LastEntry().Data["error"].(error).Error(), constants.ProviderNotFound)
}

func TestSessionRecoversHostPanics(t *testing.T) {
	h := newHarness(t)
	h.install(constants.ProviderGlobalModern, map[string]any{
		"getPublicKey": memenv.Func(func(context.Context, ...any) (any, error) {
			panic("host exploded")
		}),
	})

	assert.Equal(t, "", h.adapter.GetPublicKey(context.Background()))
	assert.Equal(t, 1, h.warnings())
}
