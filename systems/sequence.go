package systems

import (
	"log"
	"time"

	"github.com/automoto/ledgeline/components"
	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/tags"
	"github.com/yohamta/donburi"
)

// UpdateSequence respawns a player who fell out of the map and advances to
// the next map when the player leaves through the right edge. Leaving the
// last map completes the sequence and freezes the world.
func UpdateSequence(w donburi.World, _ time.Time) {
	seq, rules, ok := activeSequence(w)
	if !ok {
		return
	}
	playerEntry, ok := tags.Player.First(w)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)
	m := seq.Current()

	if player.Y < m.Box().BottomY-rules.Sequence.RespawnMargin {
		Respawn(player, m, rules.Sequence)
		log.Printf("[sequence] fell out of %s, respawned at (%.0f, %.0f)", m.Name(), player.X, player.Y)
	}

	if player.X <= m.Box().RightX {
		return
	}

	seq.Index++
	if seq.Complete() {
		seq.Active = false
		log.Printf("[sequence] completed %d maps", len(seq.Maps))
		return
	}

	m = seq.Current()
	Respawn(player, m, rules.Sequence)
	log.Printf("[sequence] advanced to map %d/%d (%s)", seq.Index+1, len(seq.Maps), m.Name())
}

// Respawn puts p at rest on m's spawn point. Jump and bounce charges are
// kept.
func Respawn(p *components.PlayerData, m *level.GameMap, rules cfg.SequenceConfig) {
	x, y := m.Spawn(rules)
	p.PlaceAt(x, y)
}
