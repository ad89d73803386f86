package pipeline

import (
	"context"
	"math/rand"
	"time"
)

// Pacer inserts a randomized pause between outbound scrape calls so the run
// paces like a person browsing rather than a crawler.
type Pacer struct {
	min   time.Duration
	max   time.Duration
	rand  func() float64
	sleep func(ctx context.Context, d time.Duration)
}

// PacerOption overrides Pacer behaviour, primarily for tests.
type PacerOption func(*Pacer)

// WithRandSource replaces the uniform random source. fn must return values in
// [0, 1).
func WithRandSource(fn func() float64) PacerOption {
	return func(p *Pacer) {
		if fn != nil {
			p.rand = fn
		}
	}
}

// WithSleepFunc replaces the sleeping behaviour.
func WithSleepFunc(fn func(ctx context.Context, d time.Duration)) PacerOption {
	return func(p *Pacer) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// NewPacer builds a Pacer pausing between minSeconds and maxSeconds. A
// non-positive or inverted range disables pausing.
func NewPacer(minSeconds, maxSeconds float64, opts ...PacerOption) *Pacer {
	p := &Pacer{
		min:   time.Duration(minSeconds * float64(time.Second)),
		max:   time.Duration(maxSeconds * float64(time.Second)),
		rand:  rand.Float64,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait pauses for a random duration within the configured range. It returns
// early when ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) {
	if p == nil || p.min <= 0 || p.max < p.min {
		return
	}
	delay := p.min + time.Duration(p.rand()*float64(p.max-p.min))
	p.sleep(ctx, delay)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
