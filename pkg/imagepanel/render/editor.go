package render

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// ControlKind is the widget type of an editor control.
type ControlKind string

const (
	ControlNumber     ControlKind = "number"
	ControlRange      ControlKind = "range"
	ControlSwitch     ControlKind = "switch"
	ControlColor      ControlKind = "color"
	ControlThresholds ControlKind = "thresholds"
)

// Control names, matching the option JSON keys.
const (
	FieldImageSize           = "imageSize"
	FieldTextFontSize        = "textFontSize"
	FieldOverlayStrokeSize   = "overlayStrokeSize"
	FieldUseThreshold        = "useThreshold"
	FieldThresholds          = "thresholds"
	FieldTextColor           = "textColor"
	FieldBorderColor         = "borderColor"
	FieldUseOverlayThreshold = "useOverlayThreshold"
	FieldOverlayThresholds   = "overlayThresholds"
	FieldOverlayBorderColor  = "overlayBorderColor"
)

// Slider bounds.
const (
	MinFontSize   = 8
	MaxFontSize   = 28
	MinStrokeSize = 1
	MaxStrokeSize = 8
)

// ErrUnknownControl is returned by Set for names the editor does not expose.
var ErrUnknownControl = errors.New("unknown control")

// Control describes one editable setting.
type Control struct {
	Name  string      `json:"name"`
	Label string      `json:"label"`
	Kind  ControlKind `json:"kind"`
	Value string      `json:"value"`
	Min   float64     `json:"min,omitempty"`
	Max   float64     `json:"max,omitempty"`
}

// Editor holds a draft of the options and pushes a complete replacement on every edit.
type Editor struct {
	draft    models.Options
	onChange func(models.Options)
}

// NewEditor creates an editor over opts. onChange may be nil.
func NewEditor(opts models.Options, onChange func(models.Options)) *Editor {
	return &Editor{draft: cloneOptions(opts), onChange: onChange}
}

// Options returns a copy of the current draft.
func (e *Editor) Options() models.Options {
	return cloneOptions(e.draft)
}

// Controls lists the visible controls. Color pickers are shown only for
// channels that do not use thresholds; overlay controls only in the dual variant.
func (e *Editor) Controls() []Control {
	o := e.draft
	dual := o.Variant != models.VariantSingle

	controls := []Control{
		{Name: FieldImageSize, Label: "Image size", Kind: ControlNumber, Value: formatFloat(o.ImageSize)},
		{Name: FieldTextFontSize, Label: fmt.Sprintf("Text font size (%s)", formatFloat(o.TextFontSize)),
			Kind: ControlRange, Value: formatFloat(o.TextFontSize), Min: MinFontSize, Max: MaxFontSize},
	}
	if dual {
		controls = append(controls, Control{Name: FieldOverlayStrokeSize,
			Label: fmt.Sprintf("Overlay stroke size (%s)", formatFloat(o.OverlayStrokeSize)),
			Kind:  ControlRange, Value: formatFloat(o.OverlayStrokeSize), Min: MinStrokeSize, Max: MaxStrokeSize})
	}

	controls = append(controls, Control{Name: FieldUseThreshold, Label: "Use threshold for border color",
		Kind: ControlSwitch, Value: strconv.FormatBool(o.UseThreshold)})
	if o.UseThreshold {
		controls = append(controls, Control{Name: FieldThresholds, Label: "Thresholds",
			Kind: ControlThresholds, Value: FormatSteps(o.Thresholds.Steps)})
	} else {
		controls = append(controls,
			Control{Name: FieldTextColor, Label: "Text color", Kind: ControlColor, Value: o.TextColor},
			Control{Name: FieldBorderColor, Label: "Border color", Kind: ControlColor, Value: o.BorderColor},
		)
	}

	if !dual {
		return controls
	}

	controls = append(controls, Control{Name: FieldUseOverlayThreshold, Label: "Use threshold for overlay stroke color",
		Kind: ControlSwitch, Value: strconv.FormatBool(o.UseOverlayThreshold)})
	if o.UseOverlayThreshold {
		controls = append(controls, Control{Name: FieldOverlayThresholds, Label: "Overlay thresholds",
			Kind: ControlThresholds, Value: FormatSteps(o.OverlayThresholds.Steps)})
	} else {
		controls = append(controls, Control{Name: FieldOverlayBorderColor, Label: "Overlay stroke color",
			Kind: ControlColor, Value: o.OverlayBorderColor})
	}

	return controls
}

// Set parses value into the named setting and emits the full replacement options.
// The draft is left untouched when value is invalid.
func (e *Editor) Set(name, value string) error {
	next := cloneOptions(e.draft)

	switch name {
	case FieldImageSize:
		v, err := parsePositive(name, value)
		if err != nil {
			return err
		}
		next.ImageSize = v
	case FieldTextFontSize:
		v, err := parseRange(name, value, MinFontSize, MaxFontSize)
		if err != nil {
			return err
		}
		next.TextFontSize = v
	case FieldOverlayStrokeSize:
		v, err := parseRange(name, value, MinStrokeSize, MaxStrokeSize)
		if err != nil {
			return err
		}
		next.OverlayStrokeSize = v
	case FieldUseThreshold:
		v, err := parseSwitch(name, value)
		if err != nil {
			return err
		}
		next.UseThreshold = v
	case FieldUseOverlayThreshold:
		v, err := parseSwitch(name, value)
		if err != nil {
			return err
		}
		next.UseOverlayThreshold = v
	case FieldThresholds:
		steps, err := ParseSteps(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		next.Thresholds = models.ThresholdSet{Mode: models.ThresholdsModeAbsolute, Steps: steps}
	case FieldOverlayThresholds:
		steps, err := ParseSteps(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		next.OverlayThresholds = models.ThresholdSet{Mode: models.ThresholdsModeAbsolute, Steps: steps}
	case FieldTextColor:
		next.TextColor = value
	case FieldBorderColor:
		next.BorderColor = value
	case FieldOverlayBorderColor:
		next.OverlayBorderColor = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	e.draft = next
	if e.onChange != nil {
		e.onChange(cloneOptions(next))
	}
	return nil
}

// Node builds the editor form. Field names match the control names.
func (e *Editor) Node() *Node {
	form := El("form", nil).WithAttr("method", "post").WithAttr("class", "panel-editor")

	for _, c := range e.Controls() {
		form.Children = append(form.Children, controlNode(c))
	}
	form.Children = append(form.Children,
		El("button", nil, Text("Apply")).WithAttr("type", "submit"))

	return form
}

func controlNode(c Control) *Node {
	var input *Node
	switch c.Kind {
	case ControlSwitch:
		input = El("input", nil).WithAttr("type", "checkbox").WithAttr("value", "true")
		if c.Value == "true" {
			input.WithAttr("checked", "checked")
		}
	case ControlRange:
		input = El("input", nil).WithAttr("type", "range").WithAttr("value", c.Value).
			WithAttr("min", formatFloat(c.Min)).WithAttr("max", formatFloat(c.Max))
	case ControlThresholds:
		input = El("textarea", nil, Text(c.Value)).WithAttr("rows", "5")
	case ControlColor:
		input = El("input", nil).WithAttr("type", "text").WithAttr("value", c.Value)
	default:
		input = El("input", nil).WithAttr("type", "number").WithAttr("value", c.Value)
	}
	input.WithAttr("name", c.Name).WithAttr("id", c.Name)

	return El("div", nil,
		El("label", nil, Text(c.Label)).WithAttr("for", c.Name),
		input,
	).WithAttr("class", "gf-form")
}

func cloneOptions(o models.Options) models.Options {
	o.Thresholds.Steps = append([]models.ThresholdStep(nil), o.Thresholds.Steps...)
	o.OverlayThresholds.Steps = append([]models.ThresholdStep(nil), o.OverlayThresholds.Steps...)
	return o
}

func parsePositive(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%s: expected a positive number, got %q", name, value)
	}
	return v, nil
}

func parseRange(name, value string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || v < lo || v > hi {
		return 0, fmt.Errorf("%s: expected a number in [%s, %s], got %q", name, formatFloat(lo), formatFloat(hi), value)
	}
	return v, nil
}

func parseSwitch(name, value string) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: expected a boolean, got %q", name, value)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
