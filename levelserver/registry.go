// Package levelserver publishes levels and a pool document over HTTP so
// clients can build sequences with leveldata.HTTPFetcher.
package levelserver

import (
	"crypto/rand"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/shared/leveldata"
)

// LevelInfo describes a published level.
type LevelInfo struct {
	Name     string   `json:"name"`
	Surfaces int      `json:"surfaces"`
	Features []string `json:"features,omitempty"`
	Pinned   bool     `json:"pinned"`
}

type levelRecord struct {
	LevelInfo
	Level    leveldata.Level
	LastSeen time.Time
}

// Registry is an in-memory store of levels. Pinned levels live forever;
// uploaded ones expire ttl after their last upload or fetch.
type Registry struct {
	mu     sync.RWMutex
	levels map[string]*levelRecord
	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		levels: make(map[string]*levelRecord),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

func (r *Registry) Stop() {
	r.once.Do(func() { close(r.stopCh) })
}

// Pin adds a level that never expires, replacing any level of the same name.
func (r *Registry) Pin(l leveldata.Level) error {
	_, err := r.put(l, true)
	return err
}

// Publish validates l and stores it. An empty name gets a random one.
func (r *Registry) Publish(l leveldata.Level) (string, error) {
	if l.Name == "" {
		b := make([]byte, 4)
		_, _ = rand.Read(b)
		l.Name = fmt.Sprintf("level-%x", b)
	}
	return r.put(l, false)
}

func (r *Registry) put(l leveldata.Level, pinned bool) (string, error) {
	if _, err := level.FromLevel(l); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.levels[l.Name]; ok && old.Pinned && !pinned {
		return "", fmt.Errorf("level %q is pinned", l.Name)
	}
	r.levels[l.Name] = &levelRecord{
		LevelInfo: LevelInfo{
			Name:     l.Name,
			Surfaces: len(l.Surfaces),
			Features: l.Features,
			Pinned:   pinned,
		},
		Level:    l,
		LastSeen: r.now(),
	}
	return l.Name, nil
}

// Get returns the named level and refreshes its expiry.
func (r *Registry) Get(name string) (leveldata.Level, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.levels[name]
	if !ok {
		return leveldata.Level{}, false
	}
	rec.LastSeen = r.now()
	return rec.Level, true
}

// List returns every stored level sorted by name.
func (r *Registry) List() []LevelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]LevelInfo, 0, len(r.levels))
	for _, rec := range r.levels {
		result = append(result, rec.LevelInfo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Expire drops uploaded levels not seen for ttl and returns how many went.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for name, rec := range r.levels {
		if rec.Pinned || now.Sub(rec.LastSeen) < r.ttl {
			continue
		}
		log.Printf("[levels] expired level %q (last seen %s ago)", name, now.Sub(rec.LastSeen).Round(time.Second))
		delete(r.levels, name)
		n++
	}
	return n
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
