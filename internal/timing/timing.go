// Package timing measures the phases of a parse or completion request.
package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/NikitaCOEUR/clinput/internal/logger"
)

type mark struct {
	label string
	at    time.Duration
}

// Timer records named checkpoints relative to its start
type Timer struct {
	start time.Time
	marks []mark
	now   func() time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	return &Timer{start: now(), now: now}
}

// Mark records a checkpoint with a label. Marking a label again replaces
// its time but keeps its position.
func (t *Timer) Mark(label string) time.Duration {
	elapsed := t.Elapsed()
	for i := range t.marks {
		if t.marks[i].label == label {
			t.marks[i].at = elapsed
			return elapsed
		}
	}
	t.marks = append(t.marks, mark{label: label, at: elapsed})
	return elapsed
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the duration for a specific mark
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, m := range t.marks {
		if m.label == label {
			return m.at, true
		}
	}
	return 0, false
}

// Summary returns a formatted summary of all timings
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %.3fms", millis(t.Elapsed()))

	if len(t.marks) > 0 {
		b.WriteString(" (")
		for i, m := range t.marks {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %.3fms", m.label, millis(m.at))
		}
		b.WriteString(")")
	}

	return b.String()
}

// Log writes every mark and the total as duration fields of one debug entry
func (t *Timer) Log(log *logger.Logger, msg string) {
	e := log.Debug()
	for _, m := range t.marks {
		e = e.Dur(m.label, m.at)
	}
	e.Dur("total", t.Elapsed()).Msg(msg)
}

// Reset resets the timer
func (t *Timer) Reset() {
	t.start = t.now()
	t.marks = nil
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
