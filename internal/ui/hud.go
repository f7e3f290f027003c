//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"easygame/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the world view.
type HUD struct {
	panel      Panel
	title      string
	width      int
	image      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	lines      []hudLine

	toggles      []toggleState
	boolSetter   core.BoolParameterSetter
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for p with the given panel width.
func NewHUD(p Panel, title string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	if title == "" {
		title = "World"
	}
	h := &HUD{panel: p, title: title, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.toggles = newToggles(p)
	if setter, ok := p.(core.BoolParameterSetter); ok {
		h.boolSetter = setter
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the snapshot and handles clicks on the toggles.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.panel == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.panel.Parameters()
	h.lines = snapshotLines(h.snapshot)
	refreshToggles(h.toggles, h.snapshot)
	layoutToggles(h.toggles, h.width, panelPadding+len(h.lines)*lineHeight+lineHeight)
	h.handleInput()
}

func (h *HUD) handleInput() {
	if len(h.toggles) == 0 || h.boolSetter == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	i := hitToggle(h.toggles, mx-h.panelOffsetX, my)
	if i < 0 {
		return
	}
	st := &h.toggles[i]
	if h.boolSetter.SetBoolParameter(st.control.Key, !st.value) {
		st.value = !st.value
	}
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.image == nil || h.lastHeight != height {
		h.image = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.image.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	text.Draw(h.image, h.title, face, panelPadding, panelPadding+headerBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i, line := range h.lines {
		col := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if line.header {
			col = color.RGBA{R: 140, G: 180, B: 230, A: 255}
		}
		y := panelPadding + headerBaseline + (i+1)*lineHeight
		text.Draw(h.image, line.text, face, panelPadding, y, col)
	}
	for i := range h.toggles {
		st := &h.toggles[i]
		y := st.rect.Min.Y + buttonSize - 4
		text.Draw(h.image, st.control.Label, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		label := "off"
		if st.value {
			label = "on"
		}
		h.drawButton(st.rect, label, st.hasValue && h.boolSetter != nil)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.image, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(bg.R)/255.0, float64(bg.G)/255.0, float64(bg.B)/255.0, float64(bg.A)/255.0)
	h.image.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.image, label, face, x, y, fg)
}
