package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/fpscontroller/settings"
	"golang.org/x/image/font/basicfont"
)

// pauseMenu is shown while the pointer is released. It edits the persisted
// look preferences and resumes play.
type pauseMenu struct {
	ui     *ebitenui.UI
	status *widget.Text
}

func newPauseMenu(g *Game) *pauseMenu {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	m := &pauseMenu{}
	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	m.status = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(m.status)
	panel.AddChild(button("Resume", g.resume))
	panel.AddChild(button("Invert look", func() {
		g.prefs.SetInvertLook(!g.prefs.Look().InvertLook)
		g.applyPrefs()
	}))
	panel.AddChild(button("Sensitivity +", func() { g.scaleSensitivity(sensitivityStep) }))
	panel.AddChild(button("Sensitivity -", func() { g.scaleSensitivity(1 / sensitivityStep) }))
	panel.AddChild(button("Respawn", func() {
		g.char.Respawn(g.spawn)
		g.resume()
	}))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	m.ui = &ebitenui.UI{Container: root}
	return m
}

// refresh shows the current look preferences.
func (m *pauseMenu) refresh(look settings.Look) {
	invert := "off"
	if look.InvertLook {
		invert = "on"
	}
	m.status.Label = fmt.Sprintf("mouse %.3f  gamepad %.3f  invert %s",
		look.MouseSensitivity, look.GamepadSensitivity, invert)
}
