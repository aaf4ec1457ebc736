// Package timing measures the stages of a completion request.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Timer records how long each stage took since the previous one
type Timer struct {
	start time.Time
	last  time.Time
	marks map[string]time.Duration
	order []string
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{
		start: now,
		last:  now,
		marks: make(map[string]time.Duration),
	}
}

// Stage closes the current stage under label and returns its duration.
// Repeating a label accumulates into it.
func (t *Timer) Stage(label string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	if _, ok := t.marks[label]; !ok {
		t.order = append(t.order, label)
	}
	t.marks[label] += d
	return d
}

// Elapsed returns total elapsed time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration recorded for a stage
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.marks[label]
	return d, ok
}

// Summary formats the stages in order, e.g. "load=1.204ms resolve=0.031ms"
func (t *Timer) Summary() string {
	parts := make([]string, 0, len(t.order))
	for _, label := range t.order {
		parts = append(parts, fmt.Sprintf("%s=%.3fms", label, float64(t.marks[label].Microseconds())/1000.0))
	}
	return strings.Join(parts, " ")
}
