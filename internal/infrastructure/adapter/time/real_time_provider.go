package time

import (
	"context"
	stdtime "time"

	"github.com/yawboadu/churchledger/internal/domain/port/core"
)

// RealTimeProvider implements TimeProvider using the system clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new RealTimeProvider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() stdtime.Time {
	return stdtime.Now()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t stdtime.Time) stdtime.Duration {
	return stdtime.Since(t)
}

// WithTimeout returns a context with the given timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout stdtime.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
