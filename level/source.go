package level

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/shared/leveldata"
)

// SourceKind selects how a session's map sequence is built.
type SourceKind int

const (
	// SourceStatic is a single map whose data is already in hand.
	SourceStatic SourceKind = iota
	// SourceSequential loads an ordered list of level refs.
	SourceSequential
	// SourcePool samples levels from a pool document.
	SourcePool
)

func (k SourceKind) String() string {
	switch k {
	case SourceStatic:
		return "static"
	case SourceSequential:
		return "sequential"
	case SourcePool:
		return "pool"
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

// Source describes where a map sequence comes from. Only the fields for its
// Kind are read.
type Source struct {
	Kind SourceKind

	// SourceStatic
	Level leveldata.Level

	// SourceSequential
	Refs []string

	// SourcePool
	PoolRef string
	Count   int
}

// StaticSource wraps one decoded level.
func StaticSource(l leveldata.Level) Source {
	return Source{Kind: SourceStatic, Level: l}
}

// SequentialSource plays refs in order.
func SequentialSource(refs ...string) Source {
	return Source{Kind: SourceSequential, Refs: refs}
}

// PoolSource samples count levels from the pool at ref. A count of zero uses
// the configured sequence length.
func PoolSource(ref string, count int) Source {
	return Source{Kind: SourcePool, PoolRef: ref, Count: count}
}

// MapLoadError reports a level or pool that could not be fetched, decoded
// or built. A session cannot start after one.
type MapLoadError struct {
	Ref string
	Err error
}

func (e *MapLoadError) Error() string {
	return fmt.Sprintf("load map %s: %v", e.Ref, e.Err)
}

func (e *MapLoadError) Unwrap() error { return e.Err }

// BuildSequence resolves src into its ordered maps. Any failure is returned
// as a *MapLoadError. rng drives pool sampling; nil uses a random seed.
func BuildSequence(ctx context.Context, src Source, f leveldata.Fetcher, rng *rand.Rand) ([]*GameMap, error) {
	switch src.Kind {
	case SourceStatic:
		m, err := FromLevel(src.Level)
		if err != nil {
			return nil, &MapLoadError{Ref: src.Level.Name, Err: err}
		}
		return []*GameMap{m}, nil

	case SourceSequential:
		if len(src.Refs) == 0 {
			return nil, &MapLoadError{Ref: "sequence", Err: errors.New("no level refs")}
		}
		maps := make([]*GameMap, 0, len(src.Refs))
		for _, ref := range src.Refs {
			m, err := loadMap(ctx, f, ref)
			if err != nil {
				return nil, err
			}
			maps = append(maps, m)
		}
		log.Printf("[level] loaded %d sequential maps", len(maps))
		return maps, nil

	case SourcePool:
		return buildFromPool(ctx, src, f, rng)
	}
	return nil, &MapLoadError{Ref: src.Kind.String(), Err: errors.New("unknown source kind")}
}

func buildFromPool(ctx context.Context, src Source, f leveldata.Fetcher, rng *rand.Rand) ([]*GameMap, error) {
	pool, err := leveldata.LoadPool(ctx, f, src.PoolRef)
	if err != nil {
		return nil, &MapLoadError{Ref: src.PoolRef, Err: err}
	}

	// every pool entry is loaded up front so a broken entry fails the
	// session even if sampling would have skipped it
	loaded := make([]*GameMap, len(pool.Values))
	for i, v := range pool.Values {
		m, err := loadMap(ctx, f, leveldata.ResolveRef(src.PoolRef, v))
		if err != nil {
			return nil, err
		}
		loaded[i] = m
	}

	count := src.Count
	if count <= 0 {
		count = cfg.Sequence.Length
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	maps := Sample(loaded, count, rng)
	if cfg.Sequence.EntranceWall {
		maps[0] = maps[0].WithEntranceWall()
	}

	names := make([]string, len(maps))
	for i, m := range maps {
		names[i] = m.Name()
	}
	log.Printf("[level] sampled %d maps from %s: %v", len(maps), src.PoolRef, names)
	return maps, nil
}

// Sample draws count entries without replacement, refilling the bag from the
// full pool whenever it runs dry.
func Sample(pool []*GameMap, count int, rng *rand.Rand) []*GameMap {
	if len(pool) == 0 {
		return nil
	}
	var bag []*GameMap
	out := make([]*GameMap, 0, count)
	for len(out) < count {
		if len(bag) == 0 {
			bag = append(bag[:0], pool...)
		}
		i := rng.IntN(len(bag))
		out = append(out, bag[i])
		bag = append(bag[:i], bag[i+1:]...)
	}
	return out
}

func loadMap(ctx context.Context, f leveldata.Fetcher, ref string) (*GameMap, error) {
	l, err := leveldata.LoadLevel(ctx, f, ref)
	if err != nil {
		return nil, &MapLoadError{Ref: ref, Err: err}
	}
	m, err := FromLevel(l)
	if err != nil {
		return nil, &MapLoadError{Ref: ref, Err: err}
	}
	return m, nil
}
