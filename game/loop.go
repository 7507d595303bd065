package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// GameLoop ticks a session at a fixed rate until the sequence completes,
// the context is cancelled or Stop is called.
type GameLoop struct {
	session  *Session
	interval time.Duration
	onTick   func(Snapshot)
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewGameLoop(session *Session, interval time.Duration) *GameLoop {
	return &GameLoop{
		session:  session,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// OnTick registers a callback run after every tick with the new state.
func (g *GameLoop) OnTick(fn func(Snapshot)) {
	g.onTick = fn
}

// Run blocks until the loop ends. It returns nil on completion or Stop,
// ErrSessionClosed if the session was closed underneath it, and the
// context's error on cancellation.
func (g *GameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	log.Printf("[loop] started at %v per tick", g.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("[loop] cancelled")
			return ctx.Err()
		case <-g.stopChan:
			log.Println("[loop] stopped")
			return nil
		case <-ticker.C:
			active := g.session.Tick()
			if g.onTick != nil {
				g.onTick(g.session.Snapshot())
			}
			if !active {
				if g.session.Closed() {
					log.Println("[loop] session closed")
					return ErrSessionClosed
				}
				log.Println("[loop] sequence complete")
				return nil
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}
