package vector

import (
	"bufio"
	"html"
	"io"
	"strings"

	"github.com/okian/tourplot/internal/domain/chart"
)

// writeNode serializes n and its subtree. Elements without children or
// content are self-closed, which both SVG and HTML foreign content accept.
func writeNode(w *bufio.Writer, n *chart.Node) {
	tag := string(n.Kind)
	w.WriteByte('<')
	w.WriteString(tag)
	for _, a := range n.Attrs {
		writeAttr(w, a.Name, a.Value)
	}
	if !n.Transform.IsZero() {
		writeAttr(w, "transform", n.Transform.String())
	}
	if len(n.Style) > 0 {
		writeAttr(w, "style", styleString(n.Style))
	}

	if n.Text == "" && n.InnerHTML == "" && len(n.Children) == 0 && n.Kind != chart.KindDiv {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')
	switch {
	case n.InnerHTML != "":
		w.WriteString(n.InnerHTML)
	case n.Text != "":
		w.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		writeNode(w, c)
	}
	w.WriteString("</")
	w.WriteString(tag)
	w.WriteByte('>')
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	w.WriteString(html.EscapeString(value))
	w.WriteByte('"')
}

func styleString(style []chart.Attr) string {
	parts := make([]string, 0, len(style))
	for _, s := range style {
		parts = append(parts, s.Name+": "+s.Value)
	}
	return strings.Join(parts, "; ")
}

// Markup returns the serialized subtree rooted at n.
func Markup(n *chart.Node) string {
	var b strings.Builder
	bw := bufio.NewWriter(&b)
	writeNode(bw, n)
	_ = bw.Flush()
	return b.String()
}

// encode writes n to w, reporting the first write error.
func encode(w io.Writer, n *chart.Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n)
	return bw.Flush()
}
