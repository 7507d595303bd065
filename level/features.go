package level

import cfg "github.com/automoto/ledgeline/config"

// Feature flag identifiers understood by the engine.
const (
	FeatureSpawnOffset = "spawnOffset"
	FeatureFreeCameraY = "freeCameraY"
)

// Capability is what a feature flag changes. Flags only ever move the spawn
// point or relax camera clamping; they never touch collision.
type Capability struct {
	ExtraSpawnOffset bool
	FreeCameraY      bool
}

// SpawnOffsetX is the horizontal spawn shift this capability contributes.
func (c Capability) SpawnOffsetX(seq cfg.SequenceConfig) float64 {
	if c.ExtraSpawnOffset {
		return seq.FeatureSpawnOffsetX
	}
	return 0
}

// Features maps flag identifiers to their effect. Unknown flags look up the
// zero Capability and do nothing.
var Features = map[string]Capability{
	FeatureSpawnOffset: {ExtraSpawnOffset: true},
	FeatureFreeCameraY: {FreeCameraY: true},
}
