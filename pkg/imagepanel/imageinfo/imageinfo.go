// Package imageinfo decodes base64 image payloads and reports their format and size.
package imageinfo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// ErrEmptyPayload indicates the row carries no image bytes.
var ErrEmptyPayload = errors.New("empty image payload")

// Info describes one decoded image.
type Info struct {
	// Row is the row index in the source table.
	Row int `json:"row"`
	// Declared is the data URI subtype the panel will use.
	Declared string `json:"declared"`
	// Sniffed is the format detected from the leading bytes, "" if unknown.
	Sniffed string `json:"sniffed,omitempty"`
	// Width and Height are the decoded dimensions in pixels.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	// Bytes is the decoded payload size.
	Bytes int `json:"bytes"`
	// Match reports whether Declared and Sniffed name the same format.
	Match bool `json:"match"`
	// Error holds the decode failure, if any.
	Error string `json:"error,omitempty"`
}

var signatures = []struct {
	format string
	magic  []byte
}{
	{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{"jpeg", []byte{0xFF, 0xD8}},
	{"gif", []byte{0x47, 0x49, 0x46, 0x38}},
	{"webp", []byte{0x52, 0x49, 0x46, 0x46}},
	{"bmp", []byte{0x42, 0x4D}},
	{"tiff", []byte{0x49, 0x49, 0x2A, 0x00}},
	{"tiff", []byte{0x4D, 0x4D, 0x00, 0x2A}},
}

var aliases = map[string]string{
	"jpg":      "jpeg",
	"tif":      "tiff",
	"x-ms-bmp": "bmp",
}

// Sniff returns the format whose magic number prefixes raw, or "".
func Sniff(raw []byte) string {
	for _, s := range signatures {
		if bytes.HasPrefix(raw, s.magic) {
			return s.format
		}
	}
	return ""
}

// Normalize lowercases a declared type and maps common aliases.
func Normalize(declared string) string {
	d := strings.ToLower(strings.TrimSpace(declared))
	if alias, ok := aliases[d]; ok {
		return alias
	}
	return d
}

// Decode decodes a base64 payload and reads its header.
func Decode(payload, declared string) (Info, error) {
	info := Info{Declared: declared}

	if payload == "" {
		return info, ErrEmptyPayload
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return info, fmt.Errorf("decode base64: %w", err)
	}
	info.Bytes = len(raw)
	info.Sniffed = Sniff(raw)
	info.Match = info.Sniffed != "" && info.Sniffed == Normalize(declared)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return info, fmt.Errorf("decode %s header: %w", declared, err)
	}
	info.Width = cfg.Width
	info.Height = cfg.Height
	if info.Sniffed == "" {
		info.Sniffed = format
		info.Match = format == Normalize(declared)
	}

	return info, nil
}

// Inspect decodes every row's image. Failures are recorded per row and do not stop the scan.
func Inspect(rows []models.RowRecord) []Info {
	out := make([]Info, 0, len(rows))
	for _, rec := range rows {
		info, err := Decode(rec.Image, rec.ImageType)
		info.Row = rec.Index
		if err != nil {
			info.Error = err.Error()
		}
		out = append(out, info)
	}
	return out
}
