package backend

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle ensures a minimum interval between successive operations, such as
// popup population calls fired on every keystroke.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle returns a throttle allowing one operation per interval. A
// non-positive interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next operation may proceed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}
