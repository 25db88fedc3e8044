// Package keytracker turns held buttons into single presses. ebiten's
// inpututil covers keyboard keys per frame; this also covers "any gamepad",
// which inpututil only answers per device.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of one input.
type KeyStateTracker struct {
	prevPressed bool
}

// Update records the current state and reports whether the input went down
// this frame.
func (k *KeyStateTracker) Update(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.Update(ebiten.IsKeyPressed(key))
}

// IsGamepadButtonJustPressed is IsKeyJustPressed for a standard gamepad
// button on any connected pad.
func (k *KeyStateTracker) IsGamepadButtonJustPressed(button ebiten.StandardGamepadButton) bool {
	return k.Update(AnyGamepadButtonPressed(button))
}

// AnyGamepadButtonPressed reports whether any pad with a standard layout holds
// the button.
func AnyGamepadButtonPressed(button ebiten.StandardGamepadButton) bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) && ebiten.IsStandardGamepadButtonPressed(id, button) {
			return true
		}
	}
	return false
}
