package resolve

import "github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"

// ScanThresholds returns the color of the last step, in slice order, whose
// boundary value is strictly below value. It returns "" when no step matches.
// Steps are not sorted and the scan never stops early.
func ScanThresholds(value float64, steps []models.ThresholdStep) string {
	color := ""
	for _, step := range steps {
		if value > step.Value {
			color = step.Color
		}
	}
	return color
}

// Colors resolves the text, border and overlay colors for a row.
// Text and border follow primary; the overlay follows secondary.
func Colors(primary, secondary float64, opts models.Options) models.Colors {
	var c models.Colors

	if opts.UseThreshold {
		color := ScanThresholds(primary, opts.Thresholds.Steps)
		c.Text = color
		c.Border = color
	} else {
		c.Text = opts.TextColor
		c.Border = opts.BorderColor
	}

	if opts.UseOverlayThreshold {
		c.Overlay = ScanThresholds(secondary, opts.OverlayThresholds.Steps)
	} else {
		c.Overlay = opts.OverlayBorderColor
	}

	return c
}
