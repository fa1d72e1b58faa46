package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/env/memenv"
	"github.com/denelabs/walletbridge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIBindsProviderMethods(t *testing.T) {
	h := newHarness(t)
	h.install(constants.ProviderGlobalModern, map[string]any{
		"isConnected":     memenv.Returning(true),
		"getAddress":      memenv.Returning(map[string]any{"address": testKey}),
		"signTransaction": memenv.Returning("AAAAsigned"),
	})

	api, err := h.adapter.API(context.Background())
	require.NoError(t, err)
	require.NotNil(t, api.SDK)

	assert.True(t, api.HasProvider())
	assert.True(t, api.Supports(constants.MethodIsConnected))
	assert.True(t, api.Supports(constants.MethodGetAddress))
	assert.True(t, api.Supports(constants.MethodSignTransaction))
	assert.False(t, api.Supports(constants.MethodRequestAccess))
	assert.False(t, api.Supports(constants.MethodGetPublicKey))

	res, err := api.RequestAccess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": constants.ProviderNotFound}, res)

	res, err = api.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"address": testKey}, res)

	assert.Empty(t, h.env.Imported(), "a provider global makes the module import unnecessary")
}

func TestAPIIsMemoized(t *testing.T) {
	h := newBareHarness(t)
	h.env.OnScript(primaryCDN, memenv.Defines(constants.SDKGlobal, h.sdk.Namespace()))
	h.install(constants.ProviderGlobalLegacy, nil)

	first, err := h.adapter.API(context.Background())
	require.NoError(t, err)
	second, err := h.adapter.API(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{primaryCDN}, h.env.Appended())
}

func TestAPIConcurrentFirstCallsBuildOnce(t *testing.T) {
	h := newBareHarness(t)
	h.env.OnScript(primaryCDN, memenv.Defines(constants.SDKGlobal, h.sdk.Namespace()))

	results := make(chan *API, 8)
	for i := 0; i < 8; i++ {
		go func() {
			api, _ := h.adapter.API(context.Background())
			results <- api
		}()
	}
	first := <-results
	for i := 1; i < 8; i++ {
		assert.Same(t, first, <-results)
	}
	assert.Len(t, h.env.Appended(), 1)
	assert.Len(t, h.env.Imported(), 1)
}

func TestAPIFailureIsNotMemoized(t *testing.T) {
	h := newBareHarness(t)

	api, err := h.adapter.API(context.Background())
	assert.Nil(t, api)
	assert.ErrorIs(t, err, types.ErrModuleLoad)
	assert.Equal(t, []string{primaryCDN, secondaryCDN, tertiaryCDN}, h.env.Appended())

	h.env.SetGlobal(constants.SDKGlobal, h.sdk.Namespace())
	api, err = h.adapter.API(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, api)
}

func TestAPIFallsBackToWalletModule(t *testing.T) {
	h := newHarness(t)
	module := memenv.NewObject(map[string]any{
		"default": memenv.NewObject(map[string]any{
			"isConnected":     memenv.Returning(map[string]any{"isConnected": true}),
			"requestAccess":   memenv.Returning(map[string]any{"address": testKey}),
			"getAddress":      memenv.Returning(map[string]any{"address": testKey}),
			"signTransaction": memenv.Returning(map[string]any{"signedTxXdr": "AAAAsigned"}),
		}),
	})
	h.env.OnImport(walletModule, module, nil)

	api, err := h.adapter.API(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{walletModule}, h.env.Imported())
	assert.True(t, api.HasProvider())
	assert.True(t, api.Supports(constants.MethodRequestAccess))
	assert.True(t, api.Supports(constants.MethodGetAddress))
}

func TestAPIWithoutAnyProviderUsesStubs(t *testing.T) {
	h := newHarness(t)
	h.env.OnImport(walletModule, nil, errors.New("offline"))

	api, err := h.adapter.API(context.Background())
	require.NoError(t, err, "a missing provider degrades methods instead of failing")

	assert.False(t, api.HasProvider())
	res, err := api.IsConnected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, false, res)

	res, err = api.SignTransaction(context.Background(), "AAAA", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": constants.ProviderNotFound}, res)
}

func TestAPIRejectsIncompleteSDK(t *testing.T) {
	h := newBareHarness(t)
	h.env.SetGlobal(constants.SDKGlobal, memenv.NewObject(map[string]any{"Contract": memenv.NewObject(nil)}))

	_, err := h.adapter.API(context.Background())
	assert.ErrorIs(t, err, types.ErrShapeMismatch)
}
