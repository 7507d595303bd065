package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Sequence = donburi.NewTag().SetName("Sequence")
)
