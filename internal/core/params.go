package core

import (
	"strconv"

	"easygame/internal/world"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
)

// Parameter describes a single value exposed by a world.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current values exposed by a world.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD. Steps and bounds are optional and interpreted based on the
// parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// BoolParameterSetter allows HUD interactions to toggle boolean parameters.
type BoolParameterSetter interface {
	SetBoolParameter(key string, value bool) bool
}

// WorldPanel exposes a world's state as parameters and lets the HUD toggle
// boundary clamping.
type WorldPanel struct {
	Name  string
	World *world.World
}

// Parameters snapshots world dimensions, clamping, per-kind live counts and
// queue lengths.
func (p WorldPanel) Parameters() ParameterSnapshot {
	w := p.World
	if w == nil {
		return ParameterSnapshot{}
	}
	adds, removes := w.Pending()
	groups := []ParameterGroup{
		{
			Name: "World",
			Params: []Parameter{
				intParam("w", "Width", w.Width()),
				intParam("h", "Height", w.Height()),
				boolParam("bounded", "Bounded", w.Bounded()),
			},
		},
	}
	counts := ParameterGroup{Name: "Actors"}
	for _, kind := range w.Kinds() {
		counts.Params = append(counts.Params, intParam("count."+string(kind), string(kind), w.Count(kind)))
	}
	groups = append(groups, counts, ParameterGroup{
		Name: "Queues",
		Params: []Parameter{
			intParam("pending_add", "Pending add", adds),
			intParam("pending_remove", "Pending remove", removes),
		},
	})
	return ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable controls.
func (p WorldPanel) ParameterControls() []ParameterControl {
	return []ParameterControl{{Key: "bounded", Label: "Bounded", Type: ParamTypeBool}}
}

// SetBoolParameter implements BoolParameterSetter.
func (p WorldPanel) SetBoolParameter(key string, value bool) bool {
	if p.World == nil || key != "bounded" {
		return false
	}
	p.World.SetBounded(value)
	return true
}

func intParam(key, label string, v int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v)}
}

func boolParam(key, label string, v bool) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeBool, Value: strconv.FormatBool(v)}
}
