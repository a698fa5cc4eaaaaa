// Package render builds the panel and editor visual trees.
package render

import (
	"strconv"
	"strings"
)

// Style holds CSS declarations keyed by property name.
type Style map[string]string

// Node is an element of the visual tree. A node with an empty Tag is a text node.
type Node struct {
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Style    Style             `json:"style,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// El creates an element node.
func El(tag string, style Style, children ...*Node) *Node {
	return &Node{Tag: tag, Style: style, Children: children}
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// WithAttr sets an attribute and returns n.
func (n *Node) WithAttr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// TextContent concatenates every text node under n in document order.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.walk(func(c *Node) {
		b.WriteString(c.Text)
	})
	return b.String()
}

// Find returns every node under n, n included, whose tag matches.
func (n *Node) Find(tag string) []*Node {
	var out []*Node
	if n == nil {
		return out
	}
	n.walk(func(c *Node) {
		if c.Tag == tag {
			out = append(out, c)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		if c != nil {
			c.walk(fn)
		}
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
