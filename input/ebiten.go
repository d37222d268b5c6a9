package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpscontroller/motion"
)

const (
	stickDeadzone = 0.2
	// gamepadLookScale maps a fully deflected stick to a mouse-like delta.
	gamepadLookScale = 10.0
)

// Poller reads keyboard, mouse and the first standard gamepad through
// ebiten and feeds a Handler.
type Poller struct {
	*Dispatcher

	lastX, lastY int
	primed       bool
}

func NewPoller() *Poller {
	return &Poller{Dispatcher: NewDispatcher(stickDeadzone)}
}

// Update polls devices once and dispatches to h. Call it once per frame.
func (p *Poller) Update(h Handler) {
	p.Dispatch(p.read(), h)
}

// SetInputCapture locks or releases the OS cursor.
func (p *Poller) SetInputCapture(mode motion.CaptureMode) {
	if mode == motion.CaptureLocked {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

func (p *Poller) read() Frame {
	var f Frame

	var move mgl64.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move[1]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move[0]--
	}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	f.Move = move

	mx, my := ebiten.CursorPosition()
	if p.primed {
		// screen Y grows downward
		f.Look = mgl64.Vec2{float64(mx - p.lastX), float64(p.lastY - my)}
	}
	p.lastX, p.lastY = mx, my
	p.primed = true

	f.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	f.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	f.Reload = ebiten.IsKeyPressed(ebiten.KeyR)
	f.Melee = ebiten.IsKeyPressed(ebiten.KeyV)

	keyboardActive := move != (mgl64.Vec2{}) || f.Look != (mgl64.Vec2{}) || f.Jump || f.Fire || f.Reload || f.Melee
	gamepadActive := false

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		id := ids[0]
		gpMove := mgl64.Vec2{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		}
		if gpMove.Len() > stickDeadzone {
			f.Move = clampUnit(gpMove)
			gamepadActive = true
		}

		gpLook := mgl64.Vec2{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
		}
		if gpLook.Len() > stickDeadzone {
			f.Look = gpLook.Mul(gamepadLookScale)
			gamepadActive = true
		}

		buttons := []struct {
			dst *bool
			btn ebiten.StandardGamepadButton
		}{
			{&f.Jump, ebiten.StandardGamepadButtonRightBottom},
			{&f.Reload, ebiten.StandardGamepadButtonRightLeft},
			{&f.Melee, ebiten.StandardGamepadButtonRightStick},
			{&f.Fire, ebiten.StandardGamepadButtonFrontBottomRight},
		}
		for _, b := range buttons {
			if ebiten.IsStandardGamepadButtonPressed(id, b.btn) {
				*b.dst = true
				gamepadActive = true
			}
		}
	}

	switch {
	case gamepadActive:
		f.Scheme = motion.SchemeGamepad
	case keyboardActive:
		f.Scheme = motion.SchemeMouse
	default:
		f.Idle = true
	}
	return f
}

func clampUnit(v mgl64.Vec2) mgl64.Vec2 {
	if l := v.Len(); l > 1 && !math.IsInf(l, 0) {
		return v.Mul(1 / l)
	}
	return v
}
