// Package highlight picks which changed key carries the on-screen marker.
package highlight

import (
	"math/rand/v2"
	"time"
)

// DefaultInterval is the minimum time between hops.
const DefaultInterval = 5 * time.Second

// Chooser returns a uniformly distributed integer in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Chooser interface {
	IntN(n int) int
}

type globalChooser struct{}

func (globalChooser) IntN(n int) int { return rand.IntN(n) }

// Picker moves the highlight to a random changed key at most once per interval.
// The zero value is not usable; construct with New.
type Picker struct {
	interval time.Duration
	rng      Chooser
	lastHop  time.Time
	key      string
	set      bool
}

// New returns a picker whose first hop is due interval after start.
// A nil rng selects the package-level math/rand/v2 source.
func New(start time.Time, interval time.Duration, rng Chooser) *Picker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if rng == nil {
		rng = globalChooser{}
	}
	return &Picker{interval: interval, rng: rng, lastHop: start}
}

// MaybeHop re-picks the highlight when the interval has elapsed since the
// last hop. changed is only consulted on that branch. An empty changed set
// leaves the previous highlight in place, and the hop time advances either
// way. It reports whether the interval had elapsed.
func (p *Picker) MaybeHop(now time.Time, changed func() []string) bool {
	if now.Sub(p.lastHop) < p.interval {
		return false
	}
	if keys := changed(); len(keys) > 0 {
		p.key = keys[p.rng.IntN(len(keys))]
		p.set = true
	}
	p.lastHop = now
	return true
}

// Key returns the highlighted key, if any has been picked.
func (p *Picker) Key() (string, bool) {
	return p.key, p.set
}

// LastHop returns the time of the last elapsed interval.
func (p *Picker) LastHop() time.Time { return p.lastHop }

// Interval returns the hop cadence.
func (p *Picker) Interval() time.Duration { return p.interval }
