package main

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/illdynamics/qommandah-qeen/modehook"
)

// NewHookPanel builds a column of toggle buttons, one per registered mode
// hook. active lists the hooks committed by the last tick; toggles are queued
// and show up after the next one.
func NewHookPanel(hooks []modehook.Hook, active []string, toggle func(id string)) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	offImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	onImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	title := widget.NewText(
		widget.TextOpts.Text("Mode hooks (Tab)", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(title)

	on := make(map[string]bool, len(active))
	for _, id := range active {
		on[id] = true
	}
	for _, h := range hooks {
		img := offImg
		if on[h.ID] {
			img = onImg
		}
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Pressed: img}),
			widget.ButtonOpts.Text(hookLabel(h, on[h.ID]), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				toggle(h.ID)
			}),
		)
		panel.AddChild(btn)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func hookLabel(h modehook.Hook, on bool) string {
	mark := " "
	if on {
		mark = "x"
	}
	var parts []string
	if !h.GravityMultiplier.IsOne() {
		parts = append(parts, "g*"+h.GravityMultiplier.String())
	}
	if !h.SpeedMultiplier.IsOne() {
		parts = append(parts, "v*"+h.SpeedMultiplier.String())
	}
	if !h.TimeScale.IsOne() {
		parts = append(parts, "t*"+h.TimeScale.String())
	}
	if h.InvertInput {
		parts = append(parts, "invert")
	}
	if h.PulseBPM > 0 {
		parts = append(parts, fmt.Sprintf("%dbpm g*%s", h.PulseBPM, h.PulseGravity))
	}
	return fmt.Sprintf("[%s] %s %s", mark, h.ID, strings.Join(parts, " "))
}

// panelKey changes whenever the committed active set does.
func panelKey(active []string) string {
	return strings.Join(active, ",")
}
