package main

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/levels"
	"golang.org/x/image/colornames"
)

const (
	panelWidth = baseWidth / 2
	topScale   = 24.0
	sideScale  = 40.0
	followRate = 0.15
	gridStep   = 2.0

	// units per frame
	verticalFollow = 0.02
)

// views draws a top-down X/Z map on the left and a side X/Y profile on the
// right, both following the character.
type views struct {
	cam mgl64.Vec3
}

func newViews(start mgl64.Vec3) *views {
	return &views{cam: start}
}

func (v *views) follow(p mgl64.Vec3) {
	v.cam[0] = common.Lerp(v.cam[0], p[0], followRate)
	v.cam[2] = common.Lerp(v.cam[2], p[2], followRate)
	// jumps barely move the side view
	v.cam[1] = common.Approach(v.cam[1], p[1], verticalFollow)
}

func (v *views) draw(screen *ebiten.Image, lvl *levels.Level, ch *character.Character) {
	screen.Fill(colornames.Midnightblue)
	v.drawTop(screen, lvl, ch)
	v.drawSide(screen, lvl, ch)
	vector.StrokeLine(screen, panelWidth, 0, panelWidth, baseHeight, 2, colornames.Lightgrey, false)
}

func (v *views) top(x, z float64) (float32, float32) {
	return float32(panelWidth/2 + (x-v.cam.X())*topScale), float32(baseHeight/2 - (z-v.cam.Z())*topScale)
}

func (v *views) side(x, y float64) (float32, float32) {
	return float32(panelWidth + panelWidth/2 + (x-v.cam.X())*sideScale), float32(baseHeight*2/3 - (y-v.cam.Y())*sideScale)
}

func (v *views) drawTop(screen *ebiten.Image, lvl *levels.Level, ch *character.Character) {
	halfW := panelWidth / 2 / topScale
	halfH := baseHeight / 2 / topScale
	for x := math.Floor((v.cam.X()-halfW)/gridStep) * gridStep; x <= v.cam.X()+halfW; x += gridStep {
		sx, _ := v.top(x, 0)
		vector.StrokeLine(screen, sx, 0, sx, baseHeight, 1, colornames.Darkslategray, false)
	}
	for z := math.Floor((v.cam.Z()-halfH)/gridStep) * gridStep; z <= v.cam.Z()+halfH; z += gridStep {
		_, sy := v.top(0, z)
		vector.StrokeLine(screen, 0, sy, panelWidth, sy, 1, colornames.Darkslategray, false)
	}

	// blocks extrude along Z, so they are bands across the whole map
	if lvl != nil {
		for _, b := range lvl.Blocks {
			x0, _ := v.top(b.Min[0], 0)
			x1, _ := v.top(b.Max[0], 0)
			x0, x1 = clampX(x0, 0, panelWidth), clampX(x1, 0, panelWidth)
			if x1 > x0 {
				vector.DrawFilledRect(screen, x0, 0, x1-x0, baseHeight, withAlpha(lvl.LayerColor(b.Layer), 0x60), false)
			}
		}
	}

	p := ch.Body.Position()
	cx, cy := v.top(p.X(), p.Z())
	r := float32(ch.Body.Radius() * topScale)
	vector.DrawFilledCircle(screen, cx, cy, r, stateColor(ch), true)

	f := ch.Facing()
	fx, fy := v.top(p.X()+f.X()*1.5, p.Z()+f.Z()*1.5)
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.White, true)
}

func (v *views) drawSide(screen *ebiten.Image, lvl *levels.Level, ch *character.Character) {
	sub := screen.SubImage(image.Rect(panelWidth, 0, baseWidth, baseHeight)).(*ebiten.Image)

	if lvl != nil {
		for _, b := range lvl.Blocks {
			x0, y1 := v.side(b.Min[0], b.Min[1])
			x1, y0 := v.side(b.Max[0], b.Max[1])
			vector.DrawFilledRect(sub, x0, y0, x1-x0, y1-y0, lvl.LayerColor(b.Layer), false)
		}
		for _, s := range lvl.Ground {
			ax, ay := v.side(s.A[0], s.A[1])
			bx, by := v.side(s.B[0], s.B[1])
			width := float32(math.Max(2, 2*s.Thickness*sideScale))
			vector.StrokeLine(sub, ax, ay, bx, by, width, lvl.LayerColor(s.Layer), true)
		}
	}

	p := ch.Body.Position()
	half := ch.Body.Height()/2 - ch.Body.Radius()
	r := float32(ch.Body.Radius() * sideScale)
	tx, ty := v.side(p.X(), p.Y()+half)
	bx, by := v.side(p.X(), p.Y()-half)
	col := stateColor(ch)
	vector.DrawFilledCircle(sub, tx, ty, r, col, true)
	vector.DrawFilledCircle(sub, bx, by, r, col, true)
	vector.DrawFilledRect(sub, tx-r, ty, 2*r, by-ty, col, true)

	eye := ch.Eye()
	look := ch.ViewRotation().Rotate(mgl64.Vec3{0, 0, 1})
	ex, ey := v.side(eye.X(), eye.Y())
	// side view shows X against Y, so the look ray uses its pitch only
	lx, ly := v.side(eye.X()+math.Hypot(look.X(), look.Z())*1.5, eye.Y()+look.Y()*1.5)
	vector.StrokeLine(sub, ex, ey, lx, ly, 2, colornames.White, true)
	if ch.Controller.State().Firing {
		vector.StrokeCircle(sub, lx, ly, 6, 2, colornames.Red, true)
	}
}

func stateColor(ch *character.Character) color.Color {
	switch ch.Animator.State() {
	case "air":
		return colornames.Orange
	case "fire":
		return colornames.Crimson
	case "walk":
		return colornames.Limegreen
	default:
		return colornames.Seagreen
	}
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// colornames values are opaque, so premultiply by hand
	scale := float64(a) / 0xff
	return color.RGBA{R: uint8(float64(c.R) * scale), G: uint8(float64(c.G) * scale), B: uint8(float64(c.B) * scale), A: a}
}

func clampX(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
