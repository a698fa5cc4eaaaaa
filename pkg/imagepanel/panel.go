package imagepanel

import (
	"io"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/render"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/resolve"
)

// Render builds the panel visual tree for data. It has no side effects.
func Render(data models.PanelData, opts Options, dims models.Dimensions) (*render.Node, error) {
	return render.Panel(data, opts, dims)
}

// RenderHTML renders the panel and writes it as an HTML fragment.
func RenderHTML(w io.Writer, data models.PanelData, opts Options, dims models.Dimensions) error {
	node, err := Render(data, opts, dims)
	if err != nil {
		return err
	}
	return render.WriteHTML(w, node)
}

// Project resolves the fields of the first series and projects every row.
// It returns nil rows when data is not ready.
func Project(data models.PanelData, opts Options) ([]models.RowRecord, error) {
	if !data.Ready() {
		return nil, nil
	}
	frame := data.Series[0]
	return resolve.Rows(frame, resolve.Fields(frame, opts.Variant), opts)
}

// NewEditor creates an options editor that calls onChange with a full replacement on every edit.
func NewEditor(opts Options, onChange func(Options)) *render.Editor {
	return render.NewEditor(opts, onChange)
}
