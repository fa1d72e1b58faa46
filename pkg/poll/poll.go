// Package poll waits for host state to appear on an injectable clock.
package poll

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Until checks cond immediately and then once per interval. It returns true as
// soon as cond holds, and false once timeout elapses or ctx is done.
// A non-positive timeout checks exactly once.
func Until(ctx context.Context, clock clockwork.Clock, interval, timeout time.Duration, cond func() bool) bool {
	if cond() {
		return true
	}
	if timeout <= 0 {
		return false
	}

	deadline := clock.After(timeout)
	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline:
			return cond()
		case <-clock.After(interval):
			if cond() {
				return true
			}
		}
	}
}
