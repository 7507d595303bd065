package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"log"
	"math/rand/v2"
	"os"

	"github.com/automoto/ledgeline/level"
)

func main() {
	opts := level.DefaultTowerOptions()
	flag.IntVar(&opts.Floors, "floors", opts.Floors, "Platforms in the tower")
	flag.Float64Var(&opts.Width, "width", opts.Width, "Shaft width")
	flag.Float64Var(&opts.FloorGap, "gap", opts.FloorGap, "Vertical distance between platforms")
	flag.IntVar(&opts.DividerFrom, "dividers-from", opts.DividerFrom, "Floor after which dividing walls may appear")
	seed := flag.Uint64("seed", 0, "Generator seed (0 picks one)")
	inline := flag.Bool("inline", false, "Print base64 for -inline instead of JSON")
	flag.Parse()

	s := *seed
	if s == 0 {
		s = rand.Uint64()
	}
	l, err := level.GenerateTower(opts, rand.New(rand.NewPCG(s, s)))
	if err != nil {
		log.Fatalf("[gen] %v", err)
	}
	log.Printf("[gen] %s: %d surfaces, seed %d", l.Name, len(l.Surfaces), s)

	data, err := json.Marshal(l)
	if err != nil {
		log.Fatalf("[gen] %v", err)
	}
	if *inline {
		data = []byte(base64.StdEncoding.EncodeToString(data))
	}
	data = append(data, '\n')
	if _, err := os.Stdout.Write(data); err != nil {
		log.Fatalf("[gen] %v", err)
	}
}
