package level

import (
	"math"
	"slices"
	"sync"

	"github.com/automoto/ledgeline/shared/geometry"
	"github.com/solarlune/resolv"
)

// Limits on the resolv grid. The cell size doubles until the map fits in
// maxIndexCells; maps whose surfaces would still register in more than
// maxIndexEntries cells, or that are wider or taller than maxIndexExtent,
// are scanned linearly instead.
const (
	maxIndexCells   = 1 << 16
	maxIndexEntries = 1 << 20
	maxIndexExtent  = 1 << 30
)

// surfaceIndex is a resolv space holding one object per non-virtual surface,
// each grown by a padding so zero-width walls and flat floors still occupy
// cells. The space origin sits at the map's bottom-left corner minus the
// padding because resolv cells start at zero.
type surfaceIndex struct {
	mu      sync.Mutex
	space   *resolv.Space
	probe   *resolv.Object
	originX float64
	originY float64
	extent  geometry.Box

	// set when the map is too large for a grid
	linear []paddedSurface
}

type paddedSurface struct {
	index int
	box   geometry.Box
}

func newSurfaceIndex(surfaces []geometry.Surface, box geometry.Box, cell int, pad float64) *surfaceIndex {
	if cell <= 0 {
		cell = 32
	}
	pad = math.Max(pad, 0)

	ix := &surfaceIndex{
		originX: box.LeftX - pad,
		originY: box.BottomY - pad,
		extent:  box.Grow(pad),
	}

	var solid []paddedSurface
	for i, s := range surfaces {
		if !s.Virtual {
			solid = append(solid, paddedSurface{index: i, box: s.Box.Grow(pad)})
		}
	}

	width, height := ix.extent.Width(), ix.extent.Height()
	if width > maxIndexExtent || height > maxIndexExtent {
		ix.linear = solid
		return ix
	}
	for cells(width, cell)*cells(height, cell) > maxIndexCells {
		cell *= 2
	}
	entries := 0.0
	for _, ps := range solid {
		entries += ix.cellSpan(ps.box, cell)
	}
	if entries > maxIndexEntries {
		ix.linear = solid
		return ix
	}

	w := int(math.Ceil(width)) + cell
	h := int(math.Ceil(height)) + cell
	ix.space = resolv.NewSpace(w, h, cell, cell)

	for _, ps := range solid {
		obj := resolv.NewObject(
			ps.box.LeftX-ix.originX, ps.box.BottomY-ix.originY,
			ps.box.Width(), ps.box.Height(),
			surfaces[ps.index].Type.String(),
		)
		obj.Data = ps.index
		ix.space.Add(obj)
	}

	ix.probe = resolv.NewObject(0, 0, 1, 1, "probe")
	ix.space.Add(ix.probe)
	return ix
}

func cells(length float64, cell int) float64 {
	return math.Floor(length/float64(cell)) + 2
}

// cellSpan is the number of grid cells b registers in.
func (ix *surfaceIndex) cellSpan(b geometry.Box, cell int) float64 {
	c := float64(cell)
	cols := math.Floor((b.RightX-ix.originX)/c) - math.Floor((b.LeftX-ix.originX)/c) + 1
	rows := math.Floor((b.TopY-ix.originY)/c) - math.Floor((b.BottomY-ix.originY)/c) + 1
	return cols * rows
}

func (ix *surfaceIndex) query(b geometry.Box) []int {
	if !finite(b.LeftX, b.RightX, b.BottomY, b.TopY) {
		return nil
	}

	if ix.linear != nil {
		var out []int
		for _, ps := range ix.linear {
			if ps.box.Overlaps(b) {
				out = append(out, ps.index)
			}
		}
		return out
	}

	b, ok := b.Intersect(ix.extent)
	if !ok {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.probe.X = b.LeftX - ix.originX
	ix.probe.Y = b.BottomY - ix.originY
	ix.probe.W = math.Max(b.Width(), 1)
	ix.probe.H = math.Max(b.Height(), 1)
	ix.probe.Update()

	check := ix.probe.Check(0, 0)
	if check == nil {
		return nil
	}

	out := make([]int, 0, len(check.Objects))
	for _, o := range check.Objects {
		if i, ok := o.Data.(int); ok {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
