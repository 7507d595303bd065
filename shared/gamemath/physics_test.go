package gamemath

import (
	"math"
	"testing"
)

func TestApproach(t *testing.T) {
	tests := []struct {
		current, target, step, want float64
	}{
		{0, 10, 3, 3},
		{9, 10, 3, 10},
		{0, -10, 3, -3},
		{-9, -10, 3, -10},
		{12, 10, 3, 10},
		{5, 0, 2, 3},
		{1, 0, 2, 0},
		{-1, 0, 2, 0},
		{4, 4, 1, 4},
	}

	for _, tt := range tests {
		if got := Approach(tt.current, tt.target, tt.step); got != tt.want {
			t.Errorf("Approach(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.step, got, tt.want)
		}
	}
}

func TestApplyFrictionNeverOvershoots(t *testing.T) {
	for _, v := range []float64{-7, -0.4, 0, 0.4, 7} {
		got := ApplyFriction(v, 0.5)
		if math.Signbit(got) != math.Signbit(v) && got != 0 {
			t.Errorf("ApplyFriction(%v) = %v crossed zero", v, got)
		}
		if math.Abs(got) > math.Abs(v) {
			t.Errorf("ApplyFriction(%v) = %v grew", v, got)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	if ClampSpeed(12, 10) != 10 || ClampSpeed(-12, 10) != -10 || ClampSpeed(3, 10) != 3 {
		t.Error("ClampSpeed out of range")
	}
}

func TestApplyGravity(t *testing.T) {
	if got := ApplyGravity(20, 1.5, 10); got != 18.5 {
		t.Errorf("ApplyGravity(20) = %v, want 18.5", got)
	}
	if got := ApplyGravity(-9, 1.5, 10); got != -10 {
		t.Errorf("ApplyGravity(-9) = %v, want -10 (terminal)", got)
	}
}

func TestBounceFactor(t *testing.T) {
	const capSq, minRatio, minFactor = 200.0, 0.01, 0.5

	if got := BounceFactor(0, capSq, minRatio, minFactor); got != minFactor {
		t.Errorf("zero speed factor = %v, want %v", got, minFactor)
	}
	if got := BounceFactor(capSq, capSq, minRatio, minFactor); got != 1 {
		t.Errorf("cap speed factor = %v, want 1", got)
	}
	if got := BounceFactor(10*capSq, capSq, minRatio, minFactor); got != 1 {
		t.Errorf("over-cap factor = %v, want 1", got)
	}
	if got := BounceFactor(math.NaN(), capSq, minRatio, minFactor); got != minFactor {
		t.Errorf("NaN speed factor = %v, want %v", got, minFactor)
	}

	prev := 0.0
	for s := 0.0; s <= capSq; s += capSq / 50 {
		got := BounceFactor(s, capSq, minRatio, minFactor)
		if got < prev {
			t.Fatalf("factor decreased at speedSq=%v: %v < %v", s, got, prev)
		}
		if got < minFactor || got > 1 {
			t.Fatalf("factor %v out of [%v, 1]", got, minFactor)
		}
		prev = got
	}
}

func TestSurfaceHeightAt(t *testing.T) {
	if got := SurfaceHeightAt(0, 300, math.Pi/2, 123); got != 300 {
		t.Errorf("flat = %v, want 300", got)
	}
	if got := SurfaceHeightAt(0, 0, math.Pi/4, 10); math.Abs(got+10) > 1e-9 {
		t.Errorf("down slope = %v, want -10", got)
	}
	if SnapAbove(300, 1) != 301 || SnapBelow(300, 40, 1) != 259 {
		t.Error("snap offsets")
	}
}
