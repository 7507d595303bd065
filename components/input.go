package components

import "github.com/yohamta/donburi"

// IntentData is the input sampled for one tick. Jumping is an edge: the
// tick that reads it clears it.
type IntentData struct {
	WalkingLeft  bool
	WalkingRight bool
	Jumping      bool
}

var Intent = donburi.NewComponentType[IntentData]()

// Direction is -1 for left only, 1 for right only, else 0.
func (i IntentData) Direction() int {
	switch {
	case i.WalkingLeft && !i.WalkingRight:
		return -1
	case i.WalkingRight && !i.WalkingLeft:
		return 1
	}
	return 0
}
