package components

import (
	cfg "github.com/automoto/ledgeline/config"
	"github.com/yohamta/donburi"
)

// RulesData pins the configuration a session was started with so later
// config reloads do not change a running simulation.
type RulesData struct {
	Physics  cfg.PhysicsConfig
	Player   cfg.PlayerConfig
	Sequence cfg.SequenceConfig
}

var Rules = donburi.NewComponentType[RulesData]()

// CurrentRules snapshots the global configuration.
func CurrentRules() RulesData {
	return RulesData{
		Physics:  cfg.Physics,
		Player:   cfg.Player,
		Sequence: cfg.Sequence,
	}
}
