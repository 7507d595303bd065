package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/automoto/ledgeline/assets"
	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/levelserver"
	"github.com/automoto/ledgeline/shared/leveldata"
)

func main() {
	port := flag.Int("port", 8090, "HTTP listen port")
	ttl := flag.Duration("ttl", 30*time.Minute, "Lifetime of uploaded levels after their last use")
	dir := flag.String("dir", "", "Directory of .json/.tmx levels to serve instead of the bundled ones")
	tower := flag.Int("tower", 0, "Also serve a generated tower with this many floors")
	seed := flag.Uint64("seed", 0, "Tower seed (0 picks one)")
	flag.Parse()

	ctx := context.Background()
	var levels []leveldata.Level
	var err error
	if *dir != "" {
		levels, err = leveldata.LoadAllLevels(ctx, os.DirFS(*dir), ".")
	} else {
		levels, err = assets.LoadLevels(ctx)
	}
	if err != nil {
		log.Fatalf("[levels] fatal: %v", err)
	}

	if *tower > 0 {
		s := *seed
		if s == 0 {
			s = rand.Uint64()
		}
		opts := level.DefaultTowerOptions()
		opts.Floors = *tower
		t, err := level.GenerateTower(opts, rand.New(rand.NewPCG(s, s)))
		if err != nil {
			log.Fatalf("[levels] fatal: %v", err)
		}
		log.Printf("[levels] generated %s with seed %d", t.Name, s)
		levels = append(levels, t)
	}

	reg := levelserver.NewRegistry(*ttl)
	defer reg.Stop()
	for _, l := range levels {
		if err := reg.Pin(l); err != nil {
			log.Fatalf("[levels] fatal: %s: %v", l.Name, err)
		}
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[levels] serving %d levels on %s (TTL=%s)", len(levels), addr, *ttl)
	if err := http.ListenAndServe(addr, levelserver.NewMux(reg)); err != nil {
		log.Fatalf("[levels] fatal: %v", err)
	}
}
