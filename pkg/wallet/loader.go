package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/fallback"
	"github.com/denelabs/walletbridge/pkg/poll"
	"github.com/denelabs/walletbridge/pkg/types"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Loader makes sure a script defining a global symbol is loaded
type Loader struct {
	env      env.Environment
	clock    clockwork.Clock
	log      logrus.FieldLogger
	symbol   string
	interval time.Duration
	attempts int
}

// NewLoader creates a loader for scripts that define symbol. An existing tag
// is polled every interval, up to attempts times.
func NewLoader(e env.Environment, clock clockwork.Clock, logger logrus.FieldLogger, symbol string, interval time.Duration, attempts int) *Loader {
	return &Loader{
		env:      e,
		clock:    clock,
		log:      logger.WithField("symbol", symbol),
		symbol:   symbol,
		interval: interval,
		attempts: attempts,
	}
}

// Loaded reports whether the symbol is defined
func (l *Loader) Loaded() bool {
	return l.env.FindGlobal(l.symbol) != nil
}

// EnsureScript loads url unless a tag for it exists, in which case it waits
// for the symbol that tag should define.
func (l *Loader) EnsureScript(ctx context.Context, url string) error {
	if l.env.HasScript(url) {
		if poll.Until(ctx, l.clock, l.interval, time.Duration(l.attempts)*l.interval, l.Loaded) {
			return nil
		}
		return fmt.Errorf("%w: script %s loaded but %s missing", types.ErrModuleLoad, url, l.symbol)
	}

	l.log.WithField("url", url).Debug("injecting script")
	if err := l.env.AppendScript(ctx, url); err != nil {
		return fmt.Errorf("%w: %v", types.ErrModuleLoad, err)
	}
	if !l.Loaded() {
		return fmt.Errorf("%w: %s not found after loading %s", types.ErrModuleLoad, l.symbol, url)
	}
	return nil
}

// EnsureLoaded tries urls in order until one defines the symbol
func (l *Loader) EnsureLoaded(ctx context.Context, urls []string) error {
	if l.Loaded() {
		return nil
	}

	strategies := make([]fallback.Strategy[struct{}], 0, len(urls))
	for _, url := range urls {
		url := url
		strategies = append(strategies, fallback.Strategy[struct{}]{
			Name: url,
			Run: func(ctx context.Context) (struct{}, error) {
				return struct{}{}, l.EnsureScript(ctx, url)
			},
		})
	}

	_, url, err := fallback.First(ctx, func(url string, err error) {
		l.log.WithError(err).WithField("url", url).Error("script source failed")
	}, strategies...)
	if err != nil {
		return fmt.Errorf("failed to load %s from any source: %w", l.symbol, err)
	}
	l.log.WithField("url", url).Info("script loaded")
	return nil
}
