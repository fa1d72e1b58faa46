package wallet

import (
	"context"
	"time"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/poll"
	"github.com/jonboulle/clockwork"
)

// Locator finds the wallet provider injected into the page
type Locator struct {
	env      env.Environment
	clock    clockwork.Clock
	names    []string
	interval time.Duration
}

// NewLocator checks names in order, so the newest binding should come first
func NewLocator(e env.Environment, clock clockwork.Clock, interval time.Duration, names ...string) *Locator {
	return &Locator{env: e, clock: clock, names: names, interval: interval}
}

// Find returns the first provider present right now, or nil
func (l *Locator) Find() env.Object {
	for _, name := range l.names {
		if obj := l.env.FindGlobal(name); obj != nil {
			return obj
		}
	}
	return nil
}

// Locate waits up to timeout for a provider to be injected
func (l *Locator) Locate(ctx context.Context, timeout time.Duration) env.Object {
	var found env.Object
	poll.Until(ctx, l.clock, l.interval, timeout, func() bool {
		found = l.Find()
		return found != nil
	})
	return found
}
