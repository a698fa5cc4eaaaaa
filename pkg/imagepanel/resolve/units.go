// Package resolve maps result table fields to row roles and projects rows.
package resolve

// ReferenceImageSize is the image size, in pixels, that overlay geometry is captured against.
// It equals the default image size.
const ReferenceImageSize = 80

// ReferenceFontSize is subtracted from both the reference and the current image size
// when rescaling overlays. It equals the default font size, not the configured one.
const ReferenceFontSize = 14

// DefaultImageType is the data URI subtype used when no imagetype field is present.
const DefaultImageType = "bmp"
