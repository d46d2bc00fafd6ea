package schedule

import (
	"context"
	"time"
)

// Countdown owns the periodic refresh timer for one live countdown
// surface. Stop must be called when the surface is torn down; an
// unstopped Countdown leaks its timer goroutine.
type Countdown struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartCountdown fires tick once per interval until Stop is called or ctx
// is cancelled.
func StartCountdown(ctx context.Context, interval time.Duration, tick func(now time.Time)) *Countdown {
	ctx, cancel := context.WithCancel(ctx)
	c := &Countdown{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(c.done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				tick(now)
			}
		}
	}()

	return c
}

// Stop cancels the timer and waits for the refresh goroutine to exit.
// Safe to call more than once.
func (c *Countdown) Stop() {
	c.cancel()
	<-c.done
}
