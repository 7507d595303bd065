package gamemath

import "math"

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speedX, friction float64) float64 {
	return Approach(speedX, 0, friction)
}

// Approach moves current toward target by at most step, never overshooting.
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(current+step, target)
	}
	if current > target {
		return math.Max(current-step, target)
	}
	return current
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// ApplyGravity pulls speedY down by gravity, capped at the terminal fall speed.
func ApplyGravity(speedY, gravity, terminal float64) float64 {
	return math.Max(-terminal, speedY-gravity)
}

// BounceFactor scales a wall bounce by how fast the body was moving. The
// squared-speed ratio is clamped to [minRatio, 1] before taking its log, so
// the result rises monotonically from minFactor (at or below minRatio) to 1
// (at or above the cap) and is never negative or NaN.
func BounceFactor(speedSq, capSq, minRatio, minFactor float64) float64 {
	if capSq <= 0 || minRatio <= 0 || minRatio >= 1 {
		return 1
	}
	ratio := speedSq / capSq
	if math.IsNaN(ratio) || ratio < minRatio {
		ratio = minRatio
	}
	if ratio > 1 {
		ratio = 1
	}
	// log(ratio)/-log(minRatio) runs from -1 to 0
	return 1 + (1-minFactor)*math.Log(ratio)/-math.Log(minRatio)
}
