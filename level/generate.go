package level

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/automoto/ledgeline/shared/leveldata"
)

// TowerOptions shapes a generated climbing tower.
type TowerOptions struct {
	Floors      int     // platforms above the ground floor
	Width       float64 // shaft width
	FloorGap    float64 // vertical distance between platforms
	Platform    float64 // platform length
	Margin      float64 // closest a platform centre gets to either side
	BaseY       float64 // height of the ground floor
	DividerFrom int     // floor after which dividing walls may appear
}

// DefaultTowerOptions returns a 100-floor, 800-wide tower.
func DefaultTowerOptions() TowerOptions {
	return TowerOptions{
		Floors:      100,
		Width:       800,
		FloorGap:    160,
		Platform:    60,
		Margin:      100,
		BaseY:       300,
		DividerFrom: 30,
	}
}

// GenerateTower builds a vertical shaft of one-way platforms whose horizontal
// drift grows with height. Each platform is a floor with a ceiling under it.
// Past DividerFrom, short two-sided walls sometimes split consecutive
// platforms so the climb needs a wall bounce.
func GenerateTower(opts TowerOptions, rng *rand.Rand) (leveldata.Level, error) {
	if opts.Floors < 1 || opts.Width <= 2*opts.Margin || opts.FloorGap <= 0 || opts.Platform <= 0 {
		return leveldata.Level{}, fmt.Errorf("tower options out of range: %+v", opts)
	}

	height := float64(opts.Floors) * opts.FloorGap
	var surfaces []leveldata.SurfaceRecord
	add := func(x, y, length, facing float64) {
		surfaces = append(surfaces, leveldata.SurfaceRecord{StartX: x, StartY: y, Length: length, Facing: facing})
	}

	add(0, opts.BaseY, opts.Width, math.Pi/2)
	add(opts.Width-2, opts.BaseY, height, math.Pi)
	add(0, opts.BaseY+height, opts.Width, math.Pi/2)

	half := opts.Platform / 2
	center := opts.Width / 2
	for floor := 1; floor < opts.Floors; floor++ {
		reach := 60 * math.Sqrt(float64(floor))
		left := math.Min(reach, center-opts.Margin)
		right := math.Min(reach, opts.Width-opts.Margin-center)
		last := center
		center += rng.Float64()*(left+right) - left

		y := float64(floor)*opts.FloorGap + opts.BaseY
		if floor > opts.DividerFrom && rng.Float64()*(0.7+math.Sqrt(float64(floor))) > 0.66 {
			border := (last + center) / 2
			add(border, y-opts.FloorGap+20, 60, math.Pi)
			add(border, y-opts.FloorGap+80, 60, 0)
		}
		add(center-half, y, opts.Platform, math.Pi/2)
		add(center+half, y, opts.Platform, 3*math.Pi/2)
	}

	return leveldata.Level{Name: fmt.Sprintf("tower-%d", opts.Floors), Surfaces: surfaces}, nil
}
