package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDecodeOverridesOnlyPresentKeys(t *testing.T) {
	t.Cleanup(Reset)

	err := Decode(`
[physics]
jump_speed = 25.0

[player]
max_extra_jump = -1
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if Physics.JumpSpeed != 25 {
		t.Errorf("JumpSpeed = %v, want 25", Physics.JumpSpeed)
	}
	if Player.MaxExtraJump != UnlimitedExtraJumps {
		t.Errorf("MaxExtraJump = %d, want %d", Player.MaxExtraJump, UnlimitedExtraJumps)
	}
	if Physics.Gravity != 1.5 {
		t.Errorf("Gravity changed to %v, want default 1.5", Physics.Gravity)
	}
	if View.SurfaceColor != Black {
		t.Errorf("SurfaceColor lost its default: %v", View.SurfaceColor)
	}
}

func TestDecodeRejectsInvalidValues(t *testing.T) {
	t.Cleanup(Reset)

	tests := []struct {
		name string
		doc  string
	}{
		{"negative gravity", "[physics]\ngravity = -1.0\n"},
		{"zero terminal speed", "[physics]\nterminal_fall_speed = 0.0\n"},
		{"ratio out of range", "[physics]\nmin_bounce_ratio = 1.5\n"},
		{"extra jump below sentinel", "[player]\nmax_extra_jump = -2\n"},
		{"empty sequence", "[sequence]\nlength = 0\n"},
		{"bad syntax", "[physics\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := Current()
			if err := Decode(tt.doc); err == nil {
				t.Fatal("expected error")
			}
			if Current().Physics != before.Physics || Current().Player != before.Player {
				t.Error("rejected document must not change the globals")
			}
		})
	}
}

func TestWriteThenLoadFile(t *testing.T) {
	t.Cleanup(Reset)

	Physics.BounceYSpeed = 21
	var buf bytes.Buffer
	if err := Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "bounce_y_speed = 21.0") {
		t.Fatalf("encoded config missing override:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	Reset()
	if err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if Physics.BounceYSpeed != 21 {
		t.Errorf("BounceYSpeed = %v, want 21", Physics.BounceYSpeed)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDurations(t *testing.T) {
	p := PhysicsConfig{WallJumpGraceMS: 100, TickIntervalMS: 20}
	if p.WallJumpGrace() != 100*time.Millisecond {
		t.Errorf("WallJumpGrace = %v", p.WallJumpGrace())
	}
	if p.TickInterval() != 20*time.Millisecond {
		t.Errorf("TickInterval = %v", p.TickInterval())
	}
}
