package ratelimit

import (
	"context"
	"time"
)

// GlobalKey is the default admission key. All callers share one budget
// under it; per-caller budgets need a different KeyFunc.
const GlobalKey = "global"

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed bool
	// Remaining admissions left in the current window. 0 when denied.
	Remaining int
	// RetryAfter is the time until the oldest admission leaves the
	// window. Only meaningful when denied; 0 means no recommendation.
	RetryAfter time.Duration
}

// Limiter decides whether an event under the given key is admitted now,
// enforcing at most N admissions per sliding window of duration W.
//
// An error means the decision could not be evaluated; callers must treat
// that as a failure, not as an admission.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
