package hop

import (
	"context"
	"time"
)

// Clock calls back the host at a fixed interval.
// The simulation step stays fixed whatever the wall-clock time between two calls.
type Clock struct {
	Interval time.Duration
}

func NewClock(interval time.Duration) *Clock {
	return &Clock{Interval: interval}
}

// Run calls tick, in the caller's goroutine, on each interval until ctx is done
// tick receives the number of the tick, starting at 1
func (c *Clock) Run(ctx context.Context, tick func(n uint64)) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	var n uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n++
			tick(n)
		}
	}
}

// Steps calls tick count times without waiting, for headless runs
func (c *Clock) Steps(count int, tick func(n uint64)) {
	for n := range count {
		tick(uint64(n + 1))
	}
}
