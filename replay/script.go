// Package replay drives a session from a scripted input track, for headless
// runs and regression checks.
package replay

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/automoto/ledgeline/game"
)

// Step holds one input state for a number of ticks. Jump presses on the
// step's first tick only.
type Step struct {
	Ticks int  `toml:"ticks"`
	Left  bool `toml:"left"`
	Right bool `toml:"right"`
	Jump  bool `toml:"jump"`
}

// Script is an input track. With Repeat set it starts over when it runs out.
type Script struct {
	Steps  []Step `toml:"step"`
	Repeat bool   `toml:"repeat"`
}

// DecodeScript reads a TOML script:
//
//	repeat = false
//	[[step]]
//	ticks = 30
//	right = true
//	jump = true
func DecodeScript(r io.Reader) (Script, error) {
	var s Script
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	return s, s.Validate()
}

// ParseTrack reads the compact form used on the command line: space
// separated tokens of direction letters and a tick count. L, R and J are
// left, right and jump; a bare count waits. "R30 RJ20 15 LJ10".
func ParseTrack(track string) (Script, error) {
	var s Script
	for _, tok := range strings.Fields(track) {
		i := strings.IndexFunc(tok, unicode.IsDigit)
		if i < 0 {
			return Script{}, fmt.Errorf("track token %q has no tick count", tok)
		}
		n, err := strconv.Atoi(tok[i:])
		if err != nil {
			return Script{}, fmt.Errorf("track token %q: %w", tok, err)
		}
		step := Step{Ticks: n}
		for _, c := range strings.ToUpper(tok[:i]) {
			switch c {
			case 'L':
				step.Left = true
			case 'R':
				step.Right = true
			case 'J':
				step.Jump = true
			default:
				return Script{}, fmt.Errorf("track token %q: unknown input %q", tok, c)
			}
		}
		s.Steps = append(s.Steps, step)
	}
	return s, s.Validate()
}

// Validate rejects empty scripts and non-positive step lengths.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			return fmt.Errorf("step %d: ticks must be > 0, got %d", i, st.Ticks)
		}
	}
	return nil
}

// Ticks is the length of one pass through the script.
func (s Script) Ticks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// Cursor walks a script one tick at a time.
type Cursor struct {
	script Script
	step   int
	tick   int
}

func NewCursor(s Script) *Cursor {
	return &Cursor{script: s}
}

// Apply writes the next tick's input into in. It returns false once a
// non-repeating script is exhausted, leaving in untouched.
func (c *Cursor) Apply(in *game.InputState) bool {
	if c.step >= len(c.script.Steps) {
		if !c.script.Repeat || len(c.script.Steps) == 0 {
			return false
		}
		c.step = 0
	}
	st := c.script.Steps[c.step]
	in.SetWalking(st.Left, st.Right)
	if st.Jump && c.tick == 0 {
		in.PressJump()
	}

	c.tick++
	if c.tick >= st.Ticks {
		c.step++
		c.tick = 0
	}
	return true
}
