// Package launch turns command-line flags into a map source, a fetcher and
// a session factory. Every frontend binary shares it.
package launch

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/automoto/ledgeline/assets"
	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/game"
	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/shared/leveldata"
)

var ErrMixedRefs = errors.New("cannot mix URL and file level refs")

// Flags are the options shared by every binary.
type Flags struct {
	Map        string
	Levels     string
	Pool       string
	Inline     string
	Count      int
	Seed       uint64
	Config     string
	DumpConfig bool
	Debug      bool
}

// Register binds f to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Map, "map", "", "Play a single level (file path or URL)")
	fs.StringVar(&f.Levels, "levels", "", "Play a comma-separated list of levels in order")
	fs.StringVar(&f.Pool, "pool", "", "Sample levels from a pool document (file path or URL)")
	fs.StringVar(&f.Inline, "inline", "", "Play a single base64-encoded level document")
	fs.IntVar(&f.Count, "count", 0, "Maps sampled from a pool (0 uses the configured length)")
	fs.Uint64Var(&f.Seed, "seed", 0, "Pool sampling seed (0 picks one per session)")
	fs.StringVar(&f.Config, "config", "", "TOML file overriding the built-in configuration")
	fs.BoolVar(&f.DumpConfig, "dump-config", false, "Print the effective configuration as TOML and exit")
	fs.BoolVar(&f.Debug, "debug", cfg.View.Debug, "Show the debug overlay")
}

// ApplyConfig loads the config file, if any, and the debug flag. With
// DumpConfig set it prints the result and reports done.
func (f *Flags) ApplyConfig() (done bool, err error) {
	if f.Config != "" {
		if err := cfg.LoadFile(f.Config); err != nil {
			return false, err
		}
		log.Printf("[launch] loaded config %s", f.Config)
	}
	cfg.View.Debug = f.Debug
	if f.DumpConfig {
		return true, cfg.Write(os.Stdout)
	}
	return false, nil
}

// Source resolves the map flags. With none set it samples the bundled pool.
func (f *Flags) Source() (level.Source, leveldata.Fetcher, error) {
	set := 0
	for _, v := range []string{f.Map, f.Levels, f.Pool, f.Inline} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return level.Source{}, nil, errors.New("use only one of -map, -levels, -pool and -inline")
	}

	switch {
	case f.Inline != "":
		l, err := leveldata.DecodeInline(f.Inline)
		if err != nil {
			return level.Source{}, nil, err
		}
		return level.StaticSource(l), nil, nil

	case f.Map != "":
		fetcher, refs, err := Fetch(f.Map)
		if err != nil {
			return level.Source{}, nil, err
		}
		return level.SequentialSource(refs...), fetcher, nil

	case f.Levels != "":
		fetcher, refs, err := Fetch(strings.Split(f.Levels, ",")...)
		if err != nil {
			return level.Source{}, nil, err
		}
		return level.SequentialSource(refs...), fetcher, nil

	case f.Pool != "":
		fetcher, refs, err := Fetch(f.Pool)
		if err != nil {
			return level.Source{}, nil, err
		}
		return level.PoolSource(refs[0], f.Count), fetcher, nil
	}
	return assets.DefaultSource(f.Count), assets.Fetcher(), nil
}

// Fetch picks one fetcher for all refs. URLs go over HTTP; file paths are
// made absolute and read through a root file system so refs in different
// directories work together.
func Fetch(refs ...string) (leveldata.Fetcher, []string, error) {
	var urls, files int
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			urls++
			out = append(out, ref)
			continue
		}
		abs, err := filepath.Abs(ref)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s: %w", ref, err)
		}
		files++
		out = append(out, strings.TrimPrefix(filepath.ToSlash(abs), "/"))
	}

	switch {
	case len(out) == 0:
		return nil, nil, errors.New("no level refs")
	case urls > 0 && files > 0:
		return nil, nil, ErrMixedRefs
	case urls > 0:
		return leveldata.NewHTTPFetcher(), out, nil
	}
	return leveldata.FSFetcher{FS: os.DirFS("/")}, out, nil
}

// Factory builds a new session from src on every call. A non-zero seed makes
// every session sample the same maps.
func Factory(ctx context.Context, src level.Source, f leveldata.Fetcher, seed uint64, opts ...game.Option) func() (*game.Session, error) {
	return func() (*game.Session, error) {
		var rng *rand.Rand
		if seed != 0 {
			rng = rand.New(rand.NewPCG(seed, seed))
		}
		return game.Start(ctx, src, f, rng, opts...)
	}
}
