package render

import (
	"bufio"
	"html"
	"io"
	"sort"
	"strings"
)

var voidElements = map[string]bool{
	"img":   true,
	"input": true,
	"br":    true,
	"hr":    true,
}

// WriteHTML serializes the tree as HTML. Attributes and style declarations are
// written in sorted order so output is deterministic.
func WriteHTML(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n)
	return bw.Flush()
}

// HTML returns the tree as an HTML string.
func HTML(n *Node) string {
	var b strings.Builder
	_ = WriteHTML(&b, n)
	return b.String()
}

func writeNode(w *bufio.Writer, n *Node) {
	if n == nil {
		return
	}
	if n.Tag == "" {
		w.WriteString(html.EscapeString(n.Text))
		return
	}

	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, key := range sortedKeys(n.Attrs) {
		writeAttr(w, key, n.Attrs[key])
	}
	if len(n.Style) > 0 {
		writeAttr(w, "style", n.Style.String())
	}
	w.WriteByte('>')

	if voidElements[n.Tag] {
		return
	}

	if n.Text != "" {
		w.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		writeNode(w, c)
	}
	w.WriteString("</")
	w.WriteString(n.Tag)
	w.WriteByte('>')
}

func writeAttr(w *bufio.Writer, key, value string) {
	w.WriteByte(' ')
	w.WriteString(key)
	w.WriteString(`="`)
	w.WriteString(html.EscapeString(value))
	w.WriteByte('"')
}

// String formats the declarations as an inline style attribute value.
func (s Style) String() string {
	parts := make([]string, 0, len(s))
	for _, key := range sortedKeys(s) {
		parts = append(parts, key+": "+s[key])
	}
	return strings.Join(parts, "; ")
}

func sortedKeys[M ~map[string]string](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
