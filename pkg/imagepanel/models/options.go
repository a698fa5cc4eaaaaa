package models

// Variant selects between the single-threshold and the dual-threshold panel.
type Variant string

const (
	// VariantSingle reads one "value" field and draws no overlay.
	VariantSingle Variant = "single"
	// VariantDual reads "value1" and "value2" and draws overlay rectangles.
	VariantDual Variant = "dual"
)

// Options is the panel configuration. It is replaced wholesale on every edit.
type Options struct {
	// ImageSize is the box width in pixels.
	ImageSize float64 `json:"imageSize" yaml:"imageSize"`
	// TextColor is the static label color.
	TextColor string `json:"textColor" yaml:"textColor"`
	// BorderColor is the static border color.
	BorderColor string `json:"borderColor" yaml:"borderColor"`
	// OverlayBorderColor is the static overlay stroke color.
	OverlayBorderColor string `json:"overlayBorderColor" yaml:"overlayBorderColor"`
	// TextFontSize is the label font size in pixels.
	TextFontSize float64 `json:"textFontSize" yaml:"textFontSize"`
	// OverlayStrokeSize is the overlay stroke width in pixels.
	OverlayStrokeSize float64 `json:"overlayStrokeSize" yaml:"overlayStrokeSize"`
	// Thresholds drive text and border colors when UseThreshold is set.
	Thresholds ThresholdSet `json:"thresholds" yaml:"thresholds"`
	// OverlayThresholds drive the overlay color when UseOverlayThreshold is set.
	OverlayThresholds ThresholdSet `json:"overlayThresholds" yaml:"overlayThresholds"`
	// UseThreshold switches text and border colors to Thresholds.
	UseThreshold bool `json:"useThreshold" yaml:"useThreshold"`
	// UseOverlayThreshold switches the overlay color to OverlayThresholds.
	UseOverlayThreshold bool `json:"useOverlayThreshold" yaml:"useOverlayThreshold"`
	// Variant selects the field naming scheme and overlay support.
	Variant Variant `json:"variant" yaml:"variant"`
}

// Dimensions is the size of the display area in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
