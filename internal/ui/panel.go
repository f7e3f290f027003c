package ui

import (
	"image"
	"strconv"

	"easygame/internal/core"
	"easygame/internal/world"
)

// Panel is what the HUD shows: a parameter snapshot plus optional controls.
type Panel interface {
	Parameters() core.ParameterSnapshot
}

type controlsProvider interface {
	ParameterControls() []core.ParameterControl
}

// hudLine is one row of the read-only part of the panel.
type hudLine struct {
	text   string
	header bool
}

// snapshotLines flattens s into group headers followed by "label: value"
// rows.
func snapshotLines(s core.ParameterSnapshot) []hudLine {
	var lines []hudLine
	for _, g := range s.Groups {
		lines = append(lines, hudLine{text: g.Name, header: true})
		if len(g.Params) == 0 {
			lines = append(lines, hudLine{text: "  (none)"})
		}
		for _, p := range g.Params {
			lines = append(lines, hudLine{text: "  " + p.Label + ": " + p.Value})
		}
	}
	return lines
}

// toggleState tracks a boolean control and its button.
type toggleState struct {
	control  core.ParameterControl
	value    bool
	hasValue bool
	rect     image.Rectangle
}

func newToggles(p Panel) []toggleState {
	provider, ok := p.(controlsProvider)
	if !ok {
		return nil
	}
	var out []toggleState
	for _, ctrl := range provider.ParameterControls() {
		if ctrl.Type != core.ParamTypeBool {
			continue
		}
		out = append(out, toggleState{control: ctrl})
	}
	return out
}

func refreshToggles(states []toggleState, s core.ParameterSnapshot) {
	for i := range states {
		st := &states[i]
		p, ok := s.Lookup(st.control.Key)
		if !ok {
			st.hasValue = false
			continue
		}
		v, err := strconv.ParseBool(p.Value)
		st.value, st.hasValue = v, err == nil
	}
}

// layoutToggles stacks the toggle buttons from top down, right-aligned in a
// panel of the given width.
func layoutToggles(states []toggleState, width, top int) {
	for i := range states {
		y := top + i*lineHeight + (lineHeight-buttonSize)/2
		states[i].rect = image.Rect(width-panelPadding-toggleWidth, y, width-panelPadding, y+buttonSize)
	}
}

// hitToggle returns the index of the toggle under (x, y), or -1.
func hitToggle(states []toggleState, x, y int) int {
	for i := range states {
		if states[i].hasValue && pointInRect(x, y, states[i].rect) {
			return i
		}
	}
	return -1
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// shape is the collision outline of one live actor.
type shape struct {
	center  world.Vec2
	radius  float64
	heading world.Vec2
}

// collisionShapes lists the collision circle and facing of every live actor.
func collisionShapes(w *world.World) []shape {
	if w == nil {
		return nil
	}
	var out []shape
	for _, kind := range w.Kinds() {
		for _, m := range w.GetActors(kind) {
			a := world.ActorOf(m)
			r, err := a.Radius()
			if err != nil {
				continue
			}
			out = append(out, shape{center: a.Position(), radius: r, heading: world.Heading(a.Rotation())})
		}
	}
	return out
}

const (
	panelPadding   = 12
	lineHeight     = 18
	buttonSize     = 16
	toggleWidth    = 40
	headerBaseline = 14
)
