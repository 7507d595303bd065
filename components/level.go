package components

import (
	"github.com/automoto/ledgeline/level"
	"github.com/yohamta/donburi"
)

// SequenceData tracks progress through an ordered list of maps. Index ==
// len(Maps) means the sequence is complete and Active is false.
type SequenceData struct {
	Maps   []*level.GameMap
	Index  int
	Active bool
}

var Sequence = donburi.NewComponentType[SequenceData]()

// Current returns the active map, or nil once the sequence is complete.
func (s *SequenceData) Current() *level.GameMap {
	if s.Index < 0 || s.Index >= len(s.Maps) {
		return nil
	}
	return s.Maps[s.Index]
}

func (s *SequenceData) Complete() bool {
	return s.Index >= len(s.Maps)
}
