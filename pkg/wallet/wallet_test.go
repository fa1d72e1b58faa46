package wallet

import (
	"testing"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/env/memenv"
	"github.com/denelabs/walletbridge/pkg/ledger/ledgertest"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const (
	testKey      = "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H"
	primaryCDN   = "https://unpkg.test/stellar-sdk.min.js"
	secondaryCDN = "https://jsdelivr.test/stellar-sdk.min.js"
	tertiaryCDN  = "https://mirror.test/stellar-sdk.min.js"
	walletModule = "https://esm.test/freighter-api"
)

type harness struct {
	env     *memenv.Env
	sdk     *ledgertest.SDK
	clock   clockwork.FakeClock
	hook    *test.Hook
	adapter *Adapter
}

// newHarness builds an adapter over a page that already has the SDK loaded
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := newBareHarness(t)
	h.env.SetGlobal(constants.SDKGlobal, h.sdk.Namespace())
	return h
}

// newBareHarness builds an adapter over an empty page
func newBareHarness(t *testing.T) *harness {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	clock := clockwork.NewFakeClock()
	e := memenv.New()
	return &harness{
		env:   e,
		sdk:   ledgertest.New(),
		clock: clock,
		hook:  hook,
		adapter: NewAdapter(e,
			WithClock(clock),
			WithLogger(logger),
			WithSDKSources(primaryCDN, secondaryCDN, tertiaryCDN),
			WithWalletModule(walletModule),
		),
	}
}

func (h *harness) count(level logrus.Level) int {
	n := 0
	for _, entry := range h.hook.AllEntries() {
		if entry.Level == level {
			n++
		}
	}
	return n
}

func (h *harness) warnings() int {
	return h.count(logrus.WarnLevel)
}

func (h *harness) install(name string, props map[string]any) *memenv.Object {
	provider := memenv.NewObject(props)
	h.env.SetGlobal(name, provider)
	return provider
}
