package tui

import (
	"sync"
	"time"
)

// DefaultHoldWindow is how long one key event keeps a direction held.
// Terminals report presses and auto-repeats but never releases, and the
// usual repeat interval is well under this.
const DefaultHoldWindow = 150 * time.Millisecond

// Direction is a walking direction tracked by Hold.
type Direction int

const (
	Left Direction = iota
	Right
)

// Hold turns key press events into held state. Each press refreshes a
// deadline; the direction counts as held until it passes. Pressing one
// direction releases the other.
type Hold struct {
	mu       sync.Mutex
	window   time.Duration
	deadline [2]time.Time
}

func NewHold(window time.Duration) *Hold {
	return &Hold{window: window}
}

// Press records a key event for d at now.
func (h *Hold) Press(d Direction, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deadline[d] = now.Add(h.window)
	h.deadline[1-d] = time.Time{}
}

// Release drops both directions.
func (h *Hold) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deadline = [2]time.Time{}
}

// Held reports the walking state at now.
func (h *Hold) Held(now time.Time) (left, right bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return now.Before(h.deadline[Left]), now.Before(h.deadline[Right])
}
