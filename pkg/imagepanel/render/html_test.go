package render

import "testing"

func TestHTML(t *testing.T) {
	tests := []struct {
		name     string
		node     *Node
		expected string
	}{
		{
			name:     "text escaping",
			node:     El("div", nil, Text(`<b>"x" & y</b>`)),
			expected: `<div>&lt;b&gt;&#34;x&#34; &amp; y&lt;/b&gt;</div>`,
		},
		{
			name:     "sorted style",
			node:     El("div", Style{"width": "10px", "border": "3px solid"}),
			expected: `<div style="border: 3px solid; width: 10px"></div>`,
		},
		{
			name:     "void element with attrs",
			node:     El("img", nil).WithAttr("src", "data:image/png;base64,AA==").WithAttr("alt", "a&b"),
			expected: `<img alt="a&amp;b" src="data:image/png;base64,AA==">`,
		},
		{
			name:     "nil node",
			node:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		if got := HTML(tt.node); got != tt.expected {
			t.Errorf("%s: HTML() = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}
