// Package raster draws chart documents into PNG images.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ContentTypePNG is the media type of WritePNG output.
const ContentTypePNG = "image/png"

// maxPixels bounds the canvas so a bad size can't exhaust memory.
const maxPixels = 8192 * 8192

// Renderer rasterizes the first chart panel of a document. It is safe for
// concurrent use; every call draws on its own context.
type Renderer struct {
	background color.Color
	scale      float64
}

// New constructs a Renderer with a white background at 1x scale.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		background: drawing.ColorWhite,
		scale:      1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// paint is the inherited presentation state while walking the tree.
type paint struct {
	fill   string
	stroke string
	anchor string
}

// Image draws the chart panel and returns the result.
func (r *Renderer) Image(doc *chart.Document) (image.Image, error) {
	dc, err := r.draw(doc)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG draws the chart panel and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, doc *chart.Document) error {
	dc, err := r.draw(doc)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (r *Renderer) draw(doc *chart.Document) (*gg.Context, error) {
	panels := doc.Panels()
	if len(panels) == 0 {
		return nil, ErrNoPanel
	}
	panel := panels[0]

	w := int(math.Ceil(panel.Float("width") * r.scale))
	h := int(math.Ceil(panel.Float("height") * r.scale))
	if w <= 0 || h <= 0 || w*h > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(r.background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	root := paint{fill: "black", stroke: "none", anchor: "start"}
	for _, c := range panel.Children {
		r.drawNode(dc, c, root)
	}
	return dc, nil
}

func (r *Renderer) drawNode(dc *gg.Context, n *chart.Node, inherited paint) {
	p := inherit(n, inherited)

	dc.Push()
	defer dc.Pop()
	if !n.Transform.IsZero() {
		dc.Translate(n.Transform.TX, n.Transform.TY)
		if n.Transform.Rotate != 0 {
			dc.Rotate(gg.Radians(n.Transform.Rotate))
		}
	}

	switch n.Kind {
	case chart.KindCircle:
		drawCircle(dc, n, p)
	case chart.KindLine:
		drawLine(dc, n, p)
	case chart.KindText:
		drawText(dc, n, p)
	}
	for _, c := range n.Children {
		r.drawNode(dc, c, p)
	}
}

// inherit resolves fill, stroke and text-anchor with style over attribute
// over parent.
func inherit(n *chart.Node, p paint) paint {
	pick := func(name, parent string) string {
		if v, ok := n.StyleValue(name); ok {
			return v
		}
		if v, ok := n.Get(name); ok {
			return v
		}
		return parent
	}
	return paint{
		fill:   pick("fill", p.fill),
		stroke: pick("stroke", p.stroke),
		anchor: pick("text-anchor", p.anchor),
	}
}

func drawCircle(dc *gg.Context, n *chart.Node, p paint) {
	radius := n.Float("r")
	if radius <= 0 {
		return
	}
	dc.DrawCircle(n.Float("cx"), n.Float("cy"), radius)
	fill, hasFill := parseColor(p.fill)
	stroke, hasStroke := parseColor(p.stroke)
	if hasFill {
		dc.SetColor(fill)
		if hasStroke {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if hasStroke {
		dc.SetColor(stroke)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
	dc.ClearPath()
}

func drawLine(dc *gg.Context, n *chart.Node, p paint) {
	stroke, ok := parseColor(p.stroke)
	if !ok {
		return
	}
	dc.SetColor(stroke)
	dc.SetLineWidth(1)
	dc.DrawLine(n.Float("x1"), n.Float("y1"), n.Float("x2"), n.Float("y2"))
	dc.Stroke()
}

func drawText(dc *gg.Context, n *chart.Node, p paint) {
	if n.Text == "" {
		return
	}
	fill, ok := parseColor(p.fill)
	if !ok {
		return
	}
	var ax float64
	switch p.anchor {
	case "middle":
		ax = 0.5
	case "end":
		ax = 1
	}
	dy, _ := n.Get("dy")
	dc.SetColor(fill)
	dc.DrawStringAnchored(n.Text, n.Float("x"), n.Float("y"), ax, emValue(dy))
}

// emValue parses "0.71em" style offsets, returning 0 for anything else.
func emValue(s string) float64 {
	v, ok := strings.CutSuffix(strings.TrimSpace(s), "em")
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
