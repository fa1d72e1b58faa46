// Package fallback runs an ordered list of alternatives and keeps the first that works.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrNoStrategies is returned by First when it is given nothing to try
var ErrNoStrategies = errors.New("no strategies to try")

// Strategy is one named alternative
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// First runs strategies in order and returns the first success with its name.
// Later strategies are never run once one succeeds. onFail, when set, observes
// each failure before the next strategy starts. The returned error combines
// every failure, each prefixed with its strategy name.
func First[T any](ctx context.Context, onFail func(name string, err error), strategies ...Strategy[T]) (T, string, error) {
	var zero T
	if len(strategies) == 0 {
		return zero, "", ErrNoStrategies
	}

	var errs error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return zero, "", multierr.Append(errs, err)
		}

		v, err := s.Run(ctx)
		if err == nil {
			return v, s.Name, nil
		}

		err = fmt.Errorf("%s: %w", s.Name, err)
		if onFail != nil {
			onFail(s.Name, err)
		}
		errs = multierr.Append(errs, err)
	}
	return zero, "", errs
}
