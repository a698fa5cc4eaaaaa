package models

import (
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// ThresholdsMode selects how step boundaries are interpreted.
type ThresholdsMode string

// ThresholdsModeAbsolute compares values against the boundaries as-is.
const ThresholdsModeAbsolute ThresholdsMode = "absolute"

// ThresholdStep pairs a lower boundary with a color.
type ThresholdStep struct {
	// Value is the boundary. The base step uses -Inf.
	Value float64 `json:"value" yaml:"value"`
	// Color is the color used when a value exceeds Value.
	Color string `json:"color" yaml:"color"`
}

type thresholdStepJSON struct {
	Value *float64 `json:"value" yaml:"value"`
	Color string   `json:"color" yaml:"color"`
}

// MarshalJSON writes -Inf as null, matching how dashboards persist the base step.
func (s ThresholdStep) MarshalJSON() ([]byte, error) {
	out := thresholdStepJSON{Color: s.Color}
	if !math.IsInf(s.Value, -1) {
		v := s.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a null or missing value as -Inf.
func (s *ThresholdStep) UnmarshalJSON(data []byte) error {
	var in thresholdStepJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Color = in.Color
	if in.Value == nil {
		s.Value = math.Inf(-1)
	} else {
		s.Value = *in.Value
	}
	return nil
}

// UnmarshalYAML reads a null (~) or missing value as -Inf, like UnmarshalJSON.
func (s *ThresholdStep) UnmarshalYAML(node *yaml.Node) error {
	var in thresholdStepJSON
	if err := node.Decode(&in); err != nil {
		return err
	}
	s.Color = in.Color
	if in.Value == nil {
		s.Value = math.Inf(-1)
	} else {
		s.Value = *in.Value
	}
	return nil
}

// ThresholdSet is an ordered list of steps plus the mode.
type ThresholdSet struct {
	// Mode is the threshold mode. Only absolute is supported.
	Mode ThresholdsMode `json:"mode" yaml:"mode"`
	// Steps is kept in the order the user entered it. It is never sorted.
	Steps []ThresholdStep `json:"steps" yaml:"steps"`
}
