package scenes

import (
	"github.com/automoto/ledgeline/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ActionID represents a logical player action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionRestart
	ActionToggleDebug
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents the keys and buttons bound to one action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// AnalogDeadzone is the left-stick threshold before it counts as walking.
const AnalogDeadzone = 0.25

// Bindings maps actions to keyboard and gamepad inputs
var Bindings = map[ActionID]InputBinding{
	ActionMoveLeft: {
		Keys:                   []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
	},
	ActionMoveRight: {
		Keys:                   []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
	},
	ActionJump: {
		Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW, ebiten.KeySpace, ebiten.KeyX},
		// A / Cross button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
	},
	ActionRestart: {
		Keys: []ebiten.Key{ebiten.KeyEnter, ebiten.KeyR},
		// Start / Options button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight},
	},
	ActionToggleDebug: {
		Keys: []ebiten.Key{ebiten.KeyF3},
	},
}

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// pressed reports whether any binding for action is held.
func pressed(action ActionID) bool {
	b := Bindings[action]
	for _, key := range b.Keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	for _, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, btn := range b.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, btn) {
				return true
			}
		}
	}
	return false
}

// justPressed reports whether any binding for action went down this frame.
func justPressed(action ActionID) bool {
	b := Bindings[action]
	for _, key := range b.Keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	for _, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, btn := range b.StandardGamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, btn) {
				return true
			}
		}
	}
	return false
}

// analogStick reads the left stick of every connected gamepad.
func analogStick() (left, right bool) {
	for _, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if h < -AnalogDeadzone {
			left = true
		}
		if h > AnalogDeadzone {
			right = true
		}
	}
	return left, right
}

// pollInput copies this frame's key state into the session input.
// It refreshes the gamepad list, so it runs before any other input query.
func pollInput(in *game.InputState) {
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	stickLeft, stickRight := analogStick()
	in.SetWalking(pressed(ActionMoveLeft) || stickLeft, pressed(ActionMoveRight) || stickRight)
	if justPressed(ActionJump) {
		in.PressJump()
	}
}
