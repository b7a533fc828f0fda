package solar

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle caps the building insight call rate for the whole process. One
// instance is shared by every caller.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle allows n calls per interval.
func NewThrottle(n int, interval time.Duration) *Throttle {
	if n <= 0 {
		n = 1
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(n)), n),
	}
}

// Wait blocks until a call is allowed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
