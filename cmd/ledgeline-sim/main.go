package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/game"
	"github.com/automoto/ledgeline/launch"
	"github.com/automoto/ledgeline/replay"
)

func main() {
	var flags launch.Flags
	flags.Register(flag.CommandLine)
	scriptPath := flag.String("script", "", "TOML input script")
	track := flag.String("track", "R400", "Compact input track, e.g. \"R30 RJ20 15\" (ignored with -script)")
	realtime := flag.Bool("realtime", false, "Tick on the wall clock instead of as fast as possible")
	maxTicks := flag.Uint64("max-ticks", 100000, "Stop a fast run after this many ticks (0 for no limit)")
	every := flag.Int("every", 0, "Log the player every N ticks (0 for none)")
	flag.Parse()

	done, err := flags.ApplyConfig()
	if err != nil {
		log.Fatalf("[sim] config: %v", err)
	}
	if done {
		return
	}

	script, err := loadScript(*scriptPath, *track)
	if err != nil {
		log.Fatalf("[sim] %v", err)
	}

	src, fetcher, err := flags.Source()
	if err != nil {
		log.Fatalf("[sim] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var onTick func(game.Snapshot)
	if *every > 0 {
		onTick = func(snap game.Snapshot) {
			if snap.Tick%uint64(*every) == 0 {
				log.Printf("[sim] tick %d map %d/%d x=%.1f y=%.1f ground=%v",
					snap.Tick, snap.Index+1, snap.Count, snap.Player.X, snap.Player.Y, snap.Player.OnGround)
			}
		}
	}

	interval := cfg.Physics.TickInterval()
	var res replay.Result
	if *realtime {
		session, err := launch.Factory(ctx, src, fetcher, flags.Seed)()
		if err != nil {
			log.Fatalf("[sim] %v", err)
		}
		defer session.Close()
		res, err = replay.RealTime(ctx, session, script, interval, onTick)
		if err != nil && ctx.Err() == nil {
			log.Fatalf("[sim] %v", err)
		}
	} else {
		clock := game.NewManualClock(time.Unix(0, 0))
		session, err := launch.Factory(ctx, src, fetcher, flags.Seed, game.WithClock(clock))()
		if err != nil {
			log.Fatalf("[sim] %v", err)
		}
		defer session.Close()
		res = replay.Fast(session, script, clock, interval, *maxTicks, onTick)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("[sim] %v", err)
	}
}

func loadScript(path, track string) (replay.Script, error) {
	if path == "" {
		return replay.ParseTrack(track)
	}
	f, err := os.Open(path)
	if err != nil {
		return replay.Script{}, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return replay.DecodeScript(f)
}
