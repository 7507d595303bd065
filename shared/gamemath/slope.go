package gamemath

import "math"

// SurfaceHeightAt calculates the y of a surface line at x. The line passes
// through (startX, startY) and runs in direction facing − π/2, so a facing of
// π/2 is flat and 3π/4 rises to the right.
func SurfaceHeightAt(startX, startY, facing, x float64) float64 {
	return startY + math.Tan(facing-math.Pi/2)*(x-startX)
}

// SnapAbove returns the y that puts feet just above a surface height.
func SnapAbove(surfaceY, offset float64) float64 {
	return surfaceY + offset
}

// SnapBelow returns the feet y that puts a body's head just below a surface.
func SnapBelow(surfaceY, bodyH, offset float64) float64 {
	return surfaceY - offset - bodyH
}
