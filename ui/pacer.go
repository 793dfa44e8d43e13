package ui

import "time"

// Pacer spaces simulation steps by a delay while the viewer keeps drawing
// at its own frame rate.
type Pacer struct {
	last time.Time
}

// Due reports whether a step should run at now given the delay, and if so
// records now as the last step time.
func (p *Pacer) Due(now time.Time, delay time.Duration) bool {
	if !p.last.IsZero() && now.Sub(p.last) < delay {
		return false
	}
	p.last = now
	return true
}
