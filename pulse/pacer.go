package pulse

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/teranos/fsim/errors"
)

// Pacer caps how many days per second a batch simulation advances.
// A zero Pacer, or one built with a non-positive rate, never waits.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer allowing daysPerSecond steps each second.
func NewPacer(daysPerSecond float64) *Pacer {
	if daysPerSecond <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Limit(daysPerSecond), 1)}
}

// Paced reports whether Wait can block.
func (p *Pacer) Paced() bool { return p != nil && p.limiter != nil }

// Wait blocks until the next day may be simulated or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if !p.Paced() {
		return ctx.Err()
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "pacer wait")
	}
	return nil
}

// Run steps the session days times, waiting on the pacer before each step,
// and hands every snapshot to onTick. It stops early when ctx is done.
func (p *Pacer) Run(ctx context.Context, s *Session, days int, onTick TickFunc) error {
	for i := 0; i < days; i++ {
		if err := p.Wait(ctx); err != nil {
			return err
		}
		snap := s.Step()
		if onTick != nil {
			onTick(snap)
		}
	}
	return nil
}
