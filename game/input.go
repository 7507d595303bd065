package game

import (
	"sync"

	"github.com/automoto/ledgeline/components"
)

// Intent is one tick's sampled input.
type Intent = components.IntentData

// InputState is the intent record shared between input producers and the
// simulation. Writes are last-write-wins; the jump press is an edge that
// Take hands to exactly one tick.
type InputState struct {
	mu      sync.Mutex
	left    bool
	right   bool
	jumping bool
}

// SetWalking records which directions are held.
func (s *InputState) SetWalking(left, right bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.left, s.right = left, right
}

func (s *InputState) SetLeft(held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.left = held
}

func (s *InputState) SetRight(held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.right = held
}

// PressJump records a jump press. Presses before the next Take collapse
// into one.
func (s *InputState) PressJump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jumping = true
}

// Take returns the current intent and clears the jump edge.
func (s *InputState) Take() Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := Intent{WalkingLeft: s.left, WalkingRight: s.right, Jumping: s.jumping}
	s.jumping = false
	return in
}
