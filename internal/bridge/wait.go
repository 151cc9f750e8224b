package bridge

import (
	"context"
	"time"

	"github.com/banshee-data/touchbridge/internal/timeutil"
)

// WaitFunc runs when a poll yields no byte. It returns ctx.Err() once the
// context is done so the loop can stop promptly.
type WaitFunc func(ctx context.Context) error

// SleepWait returns a WaitFunc that idles for d on clock, or until ctx is
// done. A zero d only checks the context.
func SleepWait(clock timeutil.Clock, d time.Duration) WaitFunc {
	return func(ctx context.Context) error {
		if d <= 0 {
			return ctx.Err()
		}
		timer := clock.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C():
			return nil
		}
	}
}

// NoWait only checks the context. The serial read timeout already bounds
// each poll, so this is the default.
func NoWait(ctx context.Context) error {
	return ctx.Err()
}
