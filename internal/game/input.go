package game

import (
	"math"

	"raycaster/internal/collision"
	"raycaster/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler turns keyboard, mouse and gamepad state into menu actions and
// movement intents.
type InputHandler struct {
	game  *Game
	mouse mouseLook

	padConfirm keytracker.KeyStateTracker
	padBack    keytracker.KeyStateTracker
	padNext    keytracker.KeyStateTracker
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *Game) *InputHandler {
	return &InputHandler{
		game:  game,
		mouse: mouseLook{sensitivity: game.config.Movement.MouseSensitivity},
	}
}

// JustPressed reports a key that went down this frame.
func (ih *InputHandler) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Confirm is ENTER or the gamepad's bottom face button.
func (ih *InputHandler) Confirm() bool {
	pad := ih.padConfirm.IsGamepadButtonJustPressed(ebiten.StandardGamepadButtonRightBottom)
	return ih.JustPressed(ebiten.KeyEnter) || ih.JustPressed(ebiten.KeyNumpadEnter) || pad
}

// Back is ESC or the gamepad's right face button.
func (ih *InputHandler) Back() bool {
	pad := ih.padBack.IsGamepadButtonJustPressed(ebiten.StandardGamepadButtonRightRight)
	return ih.JustPressed(ebiten.KeyEscape) || pad
}

// Next is N or the gamepad's start button.
func (ih *InputHandler) Next() bool {
	pad := ih.padNext.IsGamepadButtonJustPressed(ebiten.StandardGamepadButtonCenterRight)
	return ih.JustPressed(ebiten.KeyN) || pad
}

// HandleToggles processes the in-game switches: M for mouse look, Tab for
// the HUD.
func (ih *InputHandler) HandleToggles() {
	if ih.JustPressed(ebiten.KeyM) {
		ih.mouse.toggle()
		ih.game.log.WithField("captured", ih.mouse.captured).Debug("mouse look toggled")
	}
	if ih.JustPressed(ebiten.KeyTab) {
		ih.game.showHUD = !ih.game.showHUD
	}
}

// ReleaseMouse gives the cursor back, used whenever play stops.
func (ih *InputHandler) ReleaseMouse() {
	ih.mouse.release()
}

// MouseCaptured reports whether mouse look is on.
func (ih *InputHandler) MouseCaptured() bool { return ih.mouse.captured }

// Intent combines every input device into this frame's movement request.
func (ih *InputHandler) Intent(dt float64) collision.Intent {
	cfg := ih.game.config
	rot := cfg.GetRotSpeed()

	in := keyboardIntent(ebiten.IsKeyPressed, rot, dt)
	in.Turn += ih.mouse.turn()

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		in = in.Add(stickIntent(
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
			cfg.Movement.StickDeadzone, rot, dt,
		))
	}
	return in
}

// keyboardIntent reads W/S and the up/down arrows for walking, A/D for
// strafing and the left/right arrows for turning.
func keyboardIntent(held func(ebiten.Key) bool, rotSpeed, dt float64) collision.Intent {
	var in collision.Intent
	if held(ebiten.KeyW) || held(ebiten.KeyUp) {
		in.Forward++
	}
	if held(ebiten.KeyS) || held(ebiten.KeyDown) {
		in.Forward--
	}
	if held(ebiten.KeyD) {
		in.Strafe++
	}
	if held(ebiten.KeyA) {
		in.Strafe--
	}
	if held(ebiten.KeyRight) {
		in.Turn += rotSpeed * dt
	}
	if held(ebiten.KeyLeft) {
		in.Turn -= rotSpeed * dt
	}
	return in
}

// stickIntent maps standard gamepad axes (-1 up/left, +1 down/right) to an
// intent. Deflection inside the deadzone is ignored.
func stickIntent(moveX, moveY, lookX, deadzone, rotSpeed, dt float64) collision.Intent {
	return collision.Intent{
		Forward: -applyDeadzone(moveY, deadzone),
		Strafe:  applyDeadzone(moveX, deadzone),
		Turn:    applyDeadzone(lookX, deadzone) * rotSpeed * dt,
	}
}

// applyDeadzone zeroes small deflections and rescales the rest to start
// at zero on the deadzone edge.
func applyDeadzone(v, deadzone float64) float64 {
	a := math.Abs(v)
	if a <= deadzone || deadzone >= 1 {
		return 0
	}
	scaled := (math.Min(a, 1) - deadzone) / (1 - deadzone)
	return math.Copysign(scaled, v)
}
