package output

import (
	"html/template"
	"io"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/render"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #111217; color: #d8d9da; }
nav { padding: .5rem 1rem; font-size: .875rem; }
nav a { color: #6e9fff; margin-right: 1rem; }
.gf-form { display: flex; gap: .5rem; align-items: center; margin: .5rem 1rem; }
.gf-form label { min-width: 16rem; }
.panel-editor button { margin: .5rem 1rem; }
</style>
</head>
<body>
{{if .Links}}<nav>{{range .Links}}<a href="{{.Href}}">{{.Text}}</a>{{end}}</nav>{{end}}
{{.Body}}
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

// Link is a navigation entry in the page header.
type Link struct {
	Href string
	Text string
}

// WritePage writes a standalone HTML document around the rendered tree.
func WritePage(w io.Writer, title string, body *render.Node, links ...Link) error {
	return page.Execute(w, struct {
		Title string
		Links []Link
		Body  template.HTML
	}{
		Title: title,
		Links: links,
		Body:  template.HTML(render.HTML(body)),
	})
}
