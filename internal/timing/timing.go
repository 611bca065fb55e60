// Package timing measures the phases of a completion request.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Phase is a named step and the time spent in it
type Phase struct {
	Name     string
	Duration time.Duration
}

// Timer splits elapsed time into consecutive phases
type Timer struct {
	start  time.Time
	last   time.Time
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a timer starting now
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	t := now()
	return &Timer{start: t, last: t, now: now}
}

// Mark closes the current phase under name and returns its duration
func (t *Timer) Mark(name string) time.Duration {
	now := t.now()
	d := now.Sub(t.last)
	t.last = now
	t.phases = append(t.phases, Phase{Name: name, Duration: d})
	return d
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Phases returns the recorded phases in order
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Get returns the duration of a phase
func (t *Timer) Get(name string) (time.Duration, bool) {
	for _, p := range t.phases {
		if p.Name == name {
			return p.Duration, true
		}
	}
	return 0, false
}

// Summary formats total and per-phase durations in milliseconds
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total=%s", ms(t.Elapsed()))
	for _, p := range t.phases {
		fmt.Fprintf(&b, " %s=%s", p.Name, ms(p.Duration))
	}
	return b.String()
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
