// Package tui is a terminal frontend built on tcell. It draws surfaces as
// line glyphs and the player as a block of cells.
package tui

import (
	"context"
	"log"
	"time"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/game"
	"github.com/automoto/ledgeline/render"
	"github.com/gdamore/tcell/v2"
)

const statusRows = 1

// Viewer runs sessions in a terminal.
type Viewer struct {
	screen     tcell.Screen
	newSession func() (*game.Session, error)
	session    *game.Session
	camera     *render.Camera
	canvas     *Canvas
	hold       *Hold
	clock      game.Clock
	snap       game.Snapshot
	debug      bool
	lastStep   time.Time
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithClock drives hold deadlines from c instead of the wall clock.
func WithClock(c game.Clock) Option {
	return func(v *Viewer) { v.clock = c }
}

// NewViewer prepares a viewer on an initialised screen and starts the
// first session.
func NewViewer(screen tcell.Screen, newSession func() (*game.Session, error), opts ...Option) (*Viewer, error) {
	v := &Viewer{
		screen:     screen,
		newSession: newSession,
		hold:       NewHold(DefaultHoldWindow),
		clock:      game.SystemClock,
		debug:      cfg.View.Debug,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.resize()
	if err := v.restart(); err != nil {
		return nil, err
	}
	return v, nil
}

// Snapshot returns the state drawn by the last Step.
func (v *Viewer) Snapshot() game.Snapshot { return v.snap }

func (v *Viewer) restart() error {
	s, err := v.newSession()
	if err != nil {
		return err
	}
	if v.session != nil {
		v.session.Close()
	}
	v.session = s
	v.hold.Release()
	v.snap = s.Snapshot()
	w, h := v.canvas.ViewSize()
	v.camera = render.NewCamera(w, h, cfg.View.TransitionSecs)
	v.camera.Update(v.snap, 0)
	return nil
}

func (v *Viewer) resize() {
	cols, rows := v.screen.Size()
	v.canvas = NewCanvas(cols, max(rows-statusRows, 1), cfg.View.TerminalCellW, cfg.View.TerminalCellH)
	if v.camera != nil {
		v.camera.ViewW, v.camera.ViewH = v.canvas.ViewSize()
	}
}

// HandleEvent applies one terminal event and reports whether to keep going.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := v.clock.Now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.hold.Press(Left, now)
		case tcell.KeyRight:
			v.hold.Press(Right, now)
		case tcell.KeyUp:
			v.session.Input().PressJump()
		case tcell.KeyDown:
			v.hold.Release()
		case tcell.KeyF3:
			v.debug = !v.debug
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a', 'h':
				v.hold.Press(Left, now)
			case 'd', 'l':
				v.hold.Press(Right, now)
			case 'w', 'k', ' ':
				v.session.Input().PressJump()
			case 's', 'j':
				v.hold.Release()
			case 'r':
				if err := v.restart(); err != nil {
					log.Printf("[tui] restart: %v", err)
				}
			case '`':
				v.debug = !v.debug
			}
		}

	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
	return true
}

// Step advances the session by one tick and redraws.
func (v *Viewer) Step() {
	now := v.clock.Now()
	dt := 0.0
	if !v.lastStep.IsZero() {
		dt = now.Sub(v.lastStep).Seconds()
	}
	v.lastStep = now

	left, right := v.hold.Held(now)
	v.session.Input().SetWalking(left, right)
	v.session.Tick()
	v.snap = v.session.Snapshot()
	v.camera.Update(v.snap, dt)
	v.Draw()
}

// Draw renders the last snapshot.
func (v *Viewer) Draw() {
	c := v.canvas
	c.Clear()
	for _, seg := range v.camera.Segments(v.snap) {
		c.Line(seg.X0, seg.Y0, seg.X1, seg.Y1, SegmentRune(seg))
	}
	c.Fill(v.camera.PlayerRect(v.snap), '█')

	if v.debug {
		for i, line := range render.DebugLines(v.snap) {
			c.Text(1, i, line)
		}
	}

	status := render.StatusLine(v.snap) + "  arrows/wasd move, up/space jump, r restart, q quit"
	if !v.snap.Active {
		status = render.StatusLine(v.snap) + "  r to play again, q to quit"
	}

	v.screen.Clear()
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			r := c.At(col, row)
			if r != ' ' {
				v.screen.SetContent(col, row+statusRows, r, nil, runeStyle(r))
			}
		}
	}
	col := 0
	for _, r := range status {
		v.screen.SetContent(col, 0, r, nil, tcell.StyleDefault.Reverse(true))
		col++
	}
	v.screen.Show()
}

func runeStyle(r rune) tcell.Style {
	switch r {
	case '█':
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case '|', '=':
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	case '.':
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case '_', '/', '\\':
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorRed)
}

// Run polls terminal events and ticks at the configured interval until the
// user quits or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	defer func() {
		if v.session != nil {
			v.session.Close()
		}
	}()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(cfg.Physics.TickInterval())
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventChan:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Step()
		}
	}
}
