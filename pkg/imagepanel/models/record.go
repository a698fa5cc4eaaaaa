package models

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Colors is the resolved color set of a row. Empty means unset.
type Colors struct {
	Text    string `json:"text"`
	Border  string `json:"border"`
	Overlay string `json:"overlay"`
}

// RowRecord is the projection of one table row.
type RowRecord struct {
	// Index is the row index in the source table.
	Index int `json:"index"`
	// Image is the base64 payload.
	Image string `json:"image"`
	// ImageType is the data URI subtype, "bmp" when no imagetype field exists.
	ImageType string `json:"imageType"`
	// Label is the raw label value, nil when absent.
	Label any `json:"label"`
	// PrimaryValue drives text and border colors.
	PrimaryValue float64 `json:"primaryValue"`
	// SecondaryValue drives the overlay color.
	SecondaryValue float64 `json:"secondaryValue"`
	// RawOverlay is the overlay geometry in source units.
	RawOverlay Rect `json:"rawOverlay"`
	// Overlay is RawOverlay rescaled to the configured image size.
	Overlay Rect `json:"overlay"`
	// Colors holds the resolved colors.
	Colors Colors `json:"colors"`
}

// DataURI returns the image as a data URI.
func (r RowRecord) DataURI() string {
	return "data:image/" + r.ImageType + ";base64," + r.Image
}
