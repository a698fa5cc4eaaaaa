// Package imagepanel renders result tables of base64 images as a bordered, labelled image grid.
package imagepanel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// Options is the panel configuration.
type Options = models.Options

// DefaultOptions returns the options a new panel starts with.
func DefaultOptions() Options {
	return Options{
		ImageSize:          80,
		TextColor:          "#ffffff",
		BorderColor:        "#ffffff",
		OverlayBorderColor: "#ffffff",
		TextFontSize:       14,
		OverlayStrokeSize:  2,
		Thresholds: models.ThresholdSet{
			Mode:  models.ThresholdsModeAbsolute,
			Steps: []models.ThresholdStep{},
		},
		OverlayThresholds: models.ThresholdSet{
			Mode:  models.ThresholdsModeAbsolute,
			Steps: []models.ThresholdStep{},
		},
		Variant: models.VariantDual,
	}
}

// Validate checks the invariants the editor normally enforces.
func Validate(o Options) error {
	var problems []string

	if !(o.ImageSize > 0) || math.IsInf(o.ImageSize, 1) {
		problems = append(problems, fmt.Sprintf("imageSize must be > 0, got %v", o.ImageSize))
	}
	if !(o.TextFontSize > 0) || math.IsInf(o.TextFontSize, 1) {
		problems = append(problems, fmt.Sprintf("textFontSize must be > 0, got %v", o.TextFontSize))
	}
	if o.OverlayStrokeSize < 0 {
		problems = append(problems, fmt.Sprintf("overlayStrokeSize must be >= 0, got %v", o.OverlayStrokeSize))
	}
	for name, set := range map[string]models.ThresholdSet{
		"thresholds":        o.Thresholds,
		"overlayThresholds": o.OverlayThresholds,
	} {
		if set.Mode != models.ThresholdsModeAbsolute {
			problems = append(problems, fmt.Sprintf("%s.mode %q is not supported", name, set.Mode))
		}
	}
	switch o.Variant {
	case models.VariantSingle, models.VariantDual:
	default:
		problems = append(problems, fmt.Sprintf("unknown variant %q", o.Variant))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(problems, "; "))
	}
	return nil
}

// LoadOptions reads options from a YAML or JSON file. Missing keys keep their defaults.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Options{}, err
	}

	opts := DefaultOptions()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &opts)
	default:
		err = yaml.Unmarshal(data, &opts)
	}
	if err != nil {
		return Options{}, fmt.Errorf("%w: %s: %v", ErrInvalidOptions, path, err)
	}

	if err := Validate(opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// MarshalOptionsYAML encodes options as YAML.
func MarshalOptionsYAML(o Options) ([]byte, error) {
	return yaml.Marshal(o)
}
