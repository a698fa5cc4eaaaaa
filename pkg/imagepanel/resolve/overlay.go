package resolve

import "github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"

// RescaleValue maps one overlay coordinate captured at ReferenceImageSize to imageSize.
func RescaleValue(raw, imageSize float64) float64 {
	percent := raw * 100 / (ReferenceImageSize - ReferenceFontSize)
	return (imageSize - ReferenceFontSize) * percent / 100
}

// Rescale maps each component of raw independently to imageSize.
func Rescale(raw models.Rect, imageSize float64) models.Rect {
	return models.Rect{
		Top:    RescaleValue(raw.Top, imageSize),
		Left:   RescaleValue(raw.Left, imageSize),
		Width:  RescaleValue(raw.Width, imageSize),
		Height: RescaleValue(raw.Height, imageSize),
	}
}
