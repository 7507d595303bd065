package leveldata

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Tiled layer and property names read by LoadTMX
const (
	SolidLayer    = "solid"
	FeatureGroup  = "Features"
	SlopeProperty = "slope"

	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)

// LoadTMX parses a Tiled map and converts its solid tile layer into surfaces.
// Only tile edges that border an empty cell become surfaces; slope tiles
// become a single diagonal floor plus their exposed vertical and bottom
// edges. Tiled's y axis points down, so rows are flipped into world space.
// Object names in the "Features" group become feature flags. It takes an
// fs.FS so callers can pass embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string) (Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return Level{}, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	grid := newTileGrid(levelMap.Width, levelMap.Height)
	for _, layer := range levelMap.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				kind := "solid"
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if slope := tilesetTile.Properties.GetString(SlopeProperty); slope != "" {
						kind = slope
					}
				}
				grid.set(x, y, kind)
			}
		}
		break
	}

	base := path.Base(tmxPath)
	level := Level{
		Name:     strings.TrimSuffix(base, path.Ext(base)),
		Surfaces: grid.surfaces(float64(levelMap.TileWidth), float64(levelMap.TileHeight)),
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != FeatureGroup {
			continue
		}
		for _, o := range og.Objects {
			if o.Name != "" {
				level.Features = append(level.Features, o.Name)
			}
		}
	}

	return level, nil
}

// tileGrid holds tile kinds in Tiled row order (row 0 at the top).
type tileGrid struct {
	w, h  int
	kinds []string
}

func newTileGrid(w, h int) *tileGrid {
	return &tileGrid{w: w, h: h, kinds: make([]string, w*h)}
}

func (g *tileGrid) set(x, y int, kind string) {
	g.kinds[y*g.w+x] = kind
}

func (g *tileGrid) at(x, y int) string {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return ""
	}
	return g.kinds[y*g.w+x]
}

func (g *tileGrid) filled(x, y int) bool {
	return g.at(x, y) != ""
}

func (g *tileGrid) surfaces(tw, th float64) []SurfaceRecord {
	var out []SurfaceRecord
	heightPx := float64(g.h) * th

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			kind := g.at(x, y)
			if kind == "" {
				continue
			}

			left := float64(x) * tw
			right := left + tw
			top := heightPx - float64(y)*th
			bottom := top - th

			exposedTop := !g.filled(x, y-1)
			exposedBottom := !g.filled(x, y+1)
			exposedLeft := !g.filled(x-1, y)
			exposedRight := !g.filled(x+1, y)

			switch kind {
			case Slope45UpRight:
				out = append(out, SurfaceRecord{
					StartX: left, StartY: bottom,
					Length: math.Hypot(tw, th),
					Facing: math.Pi/2 + math.Atan2(th, tw),
				})
				if exposedRight {
					out = append(out, rightWall(right, top, th))
				}
			case Slope45UpLeft:
				out = append(out, SurfaceRecord{
					StartX: left, StartY: top,
					Length: math.Hypot(tw, th),
					Facing: math.Pi/2 - math.Atan2(th, tw),
				})
				if exposedLeft {
					out = append(out, leftWall(left, bottom, th))
				}
			default:
				if exposedTop {
					out = append(out, SurfaceRecord{StartX: left, StartY: top, Length: tw, Facing: math.Pi / 2})
				}
				if exposedLeft {
					out = append(out, leftWall(left, bottom, th))
				}
				if exposedRight {
					out = append(out, rightWall(right, top, th))
				}
			}

			if exposedBottom {
				out = append(out, SurfaceRecord{StartX: right, StartY: bottom, Length: tw, Facing: 3 * math.Pi / 2})
			}
		}
	}
	return out
}

// leftWall blocks bodies moving right into a tile's left face.
func leftWall(x, bottom, th float64) SurfaceRecord {
	return SurfaceRecord{StartX: x, StartY: bottom, Length: th, Facing: math.Pi}
}

// rightWall blocks bodies moving left into a tile's right face.
func rightWall(x, top, th float64) SurfaceRecord {
	return SurfaceRecord{StartX: x, StartY: top, Length: th, Facing: 0}
}
