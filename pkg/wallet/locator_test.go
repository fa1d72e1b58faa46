package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/env/memenv"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestLocatorPrefersNewestGlobal(t *testing.T) {
	e := memenv.New()
	legacy := memenv.NewObject(map[string]any{"name": "legacy"})
	modern := memenv.NewObject(map[string]any{"name": "modern"})
	locator := NewLocator(e, clockwork.NewFakeClock(), constants.ProviderPollInterval, constants.ProviderGlobals...)

	assert.Nil(t, locator.Find())

	e.SetGlobal(constants.ProviderGlobalLegacy, legacy)
	assert.Same(t, legacy, locator.Find())

	e.SetGlobal(constants.ProviderGlobalModern, modern)
	assert.Same(t, modern, locator.Find())
}

func TestLocatorWaitsForInjection(t *testing.T) {
	e := memenv.New()
	clock := clockwork.NewFakeClock()
	locator := NewLocator(e, clock, constants.ProviderPollInterval, constants.ProviderGlobals...)
	provider := memenv.NewObject(nil)

	found := make(chan any)
	go func() {
		found <- locator.Locate(context.Background(), constants.ConnectWaitTimeout)
	}()

	clock.BlockUntil(2)
	clock.Advance(constants.ProviderPollInterval)
	clock.BlockUntil(2)
	e.SetGlobal(constants.ProviderGlobalLegacy, provider)
	clock.Advance(constants.ProviderPollInterval)

	assert.Same(t, provider, <-found)
}

func TestLocatorGivesUp(t *testing.T) {
	clock := clockwork.NewFakeClock()
	locator := NewLocator(memenv.New(), clock, 200*time.Millisecond, constants.ProviderGlobals...)

	found := make(chan any)
	go func() {
		found <- locator.Locate(context.Background(), 3*time.Second)
	}()

	clock.BlockUntil(2)
	clock.Advance(3 * time.Second)

	assert.Nil(t, <-found)
}
