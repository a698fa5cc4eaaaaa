package imagepanel

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

func TestDefaultOptionsValid(t *testing.T) {
	opts := DefaultOptions()
	if err := Validate(opts); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
	if opts.ImageSize != 80 || opts.TextFontSize != 14 {
		t.Errorf("Unexpected defaults: %+v", opts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero image size", func(o *Options) { o.ImageSize = 0 }},
		{"NaN image size", func(o *Options) { o.ImageSize = math.NaN() }},
		{"negative font size", func(o *Options) { o.TextFontSize = -1 }},
		{"negative stroke", func(o *Options) { o.OverlayStrokeSize = -2 }},
		{"percentage mode", func(o *Options) { o.Thresholds.Mode = "percentage" }},
		{"unknown variant", func(o *Options) { o.Variant = "triple" }},
	}

	for _, tt := range tests {
		opts := DefaultOptions()
		tt.mutate(&opts)
		err := Validate(opts)
		if !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("%s: expected ErrInvalidOptions, got %v", tt.name, err)
		}
	}
}

func TestLoadOptionsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	content := `
imageSize: 120
variant: single
useThreshold: true
thresholds:
  mode: absolute
  steps:
    - value: -.inf
      color: green
    - value: 80
      color: red
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	if opts.ImageSize != 120 || opts.Variant != models.VariantSingle || !opts.UseThreshold {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if opts.TextFontSize != 14 {
		t.Errorf("Expected default font size to be kept, got %v", opts.TextFontSize)
	}
	steps := opts.Thresholds.Steps
	if len(steps) != 2 || !math.IsInf(steps[0].Value, -1) || steps[1].Value != 80 {
		t.Errorf("Unexpected steps: %+v", steps)
	}
}

func TestLoadOptionsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.json")
	content := `{"imageSize": 100, "overlayThresholds": {"mode": "absolute", "steps": [{"value": null, "color": "green"}, {"value": 3, "color": "red"}]}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	steps := opts.OverlayThresholds.Steps
	if len(steps) != 2 || !math.IsInf(steps[0].Value, -1) || steps[1].Color != "red" {
		t.Errorf("Unexpected overlay steps: %+v", steps)
	}
	if opts.Variant != models.VariantDual {
		t.Errorf("Expected default variant, got %q", opts.Variant)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadOptions(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("imageSize: 0\n"), 0644)
	if _, err := LoadOptions(bad); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}

	garbage := filepath.Join(dir, "garbage.json")
	os.WriteFile(garbage, []byte("{"), 0644)
	if _, err := LoadOptions(garbage); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}
}

func TestMarshalOptionsYAMLRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Thresholds.Steps = []models.ThresholdStep{{Value: math.Inf(-1), Color: "green"}}

	data, err := MarshalOptionsYAML(opts)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	os.WriteFile(path, data, 0644)

	back, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v\n%s", err, data)
	}
	if len(back.Thresholds.Steps) != 1 || !math.IsInf(back.Thresholds.Steps[0].Value, -1) {
		t.Errorf("Base step lost in round trip: %+v", back.Thresholds.Steps)
	}
}
