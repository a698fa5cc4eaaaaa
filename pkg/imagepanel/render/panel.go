package render

import (
	"fmt"
	"math"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/resolve"
)

const (
	// NoDataMessage is shown while the query is not done or returned no series.
	NoDataMessage = "There is no data for this panel"
	// NoImagesMessage is shown when the table holds nothing to draw.
	NoImagesMessage = "There are no images in the data"
	// ErrorTitle heads the error panel.
	ErrorTitle = "Failed to render images"
)

// ImageInset is the horizontal space taken by the item padding and border.
const ImageInset = 14

// Panel builds the visual tree for one render pass.
//
// In the dual variant a row failure yields the error panel and a nil error.
// In the single variant the failure is returned to the caller.
func Panel(data models.PanelData, opts models.Options, dims models.Dimensions) (*Node, error) {
	if !data.Ready() {
		return message(NoDataMessage, dims), nil
	}

	frame := data.Series[0]
	roles := resolve.Fields(frame, opts.Variant)

	if opts.Variant == models.VariantSingle {
		if !roles.Has(models.RoleImage) {
			return message(NoImagesMessage, dims), nil
		}
	} else if frame.Len() == 0 {
		return message(NoImagesMessage, dims), nil
	}

	rows, err := resolve.Rows(frame, roles, opts)
	if err != nil {
		if opts.Variant == models.VariantSingle {
			return nil, err
		}
		return errorPanel(err, dims), nil
	}

	items := make([]*Node, 0, len(rows))
	for _, rec := range rows {
		items = append(items, Item(rec, opts))
	}

	return El("div", Style{
		"overflow": "scroll",
		"width":    fmt.Sprintf("%dpx", dims.Width),
		"height":   fmt.Sprintf("%dpx", dims.Height),
	},
		El("div", Style{"display": "flex", "flex-wrap": "wrap"}, items...),
	), nil
}

// Item builds the box for one projected row.
func Item(rec models.RowRecord, opts models.Options) *Node {
	img := El("img", Style{"width": px(opts.ImageSize - ImageInset)}).
		WithAttr("src", rec.DataURI())

	var picture *Node
	if opts.Variant == models.VariantSingle || !hasOverlay(rec.Overlay) {
		picture = img
	} else {
		picture = El("div", Style{"position": "relative"}, img, overlay(rec, opts))
	}

	box := El("div", Style{
		"width":        px(opts.ImageSize),
		"margin":       "0px 10px 10px 0px",
		"padding":      "4px",
		"border":       "3px solid",
		"border-color": rec.Colors.Border,
	}, picture)
	box.WithAttr("data-row", fmt.Sprint(rec.Index))

	if label, ok := labelText(rec.Label); ok {
		box.Children = append(box.Children, El("div", Style{
			"color":     rec.Colors.Text,
			"font-size": px(opts.TextFontSize),
		}, Text(label)))
	}

	return box
}

func overlay(rec models.RowRecord, opts models.Options) *Node {
	return El("div", Style{
		"position":     "absolute",
		"top":          px(rec.Overlay.Top),
		"left":         px(rec.Overlay.Left),
		"width":        px(rec.Overlay.Width),
		"height":       px(rec.Overlay.Height),
		"border":       px(opts.OverlayStrokeSize) + " solid",
		"border-color": rec.Colors.Overlay,
	}).WithAttr("class", "overlay")
}

func hasOverlay(r models.Rect) bool {
	return r.Width > 0 && r.Height > 0
}

// labelText formats a label. Nil, empty and zero labels are hidden.
func labelText(v any) (string, bool) {
	switch l := v.(type) {
	case nil:
		return "", false
	case string:
		return l, l != ""
	case float64:
		if l == 0 || math.IsNaN(l) {
			return "", false
		}
		return fmt.Sprint(l), true
	default:
		return fmt.Sprint(l), true
	}
}

func message(text string, dims models.Dimensions) *Node {
	return El("div", Style{
		"text-align":  "center",
		"line-height": fmt.Sprintf("%dpx", dims.Height),
	}, Text(text))
}

func errorPanel(err error, dims models.Dimensions) *Node {
	return El("div", Style{
		"width":   fmt.Sprintf("%dpx", dims.Width),
		"height":  fmt.Sprintf("%dpx", dims.Height),
		"padding": "8px",
		"color":   "#e02f44",
	},
		El("strong", nil, Text(ErrorTitle)),
		El("pre", Style{"white-space": "pre-wrap"}, Text(err.Error())),
	).WithAttr("class", "panel-error")
}
