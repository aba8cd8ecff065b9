package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// newPacer returns a limiter that lets the first page through immediately
// and spaces every later page by at least delay. A non-positive delay
// disables pacing.
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// waitPage blocks until the pacer allows the next page fetch.
func waitPage(ctx context.Context, pacer *rate.Limiter) error {
	if err := pacer.Wait(ctx); err != nil {
		return fmt.Errorf("page delay: %w", err)
	}
	return nil
}
