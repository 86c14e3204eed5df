// Package vector materializes chart documents as SVG markup and HTML pages.
package vector

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	msvg "github.com/tdewolff/minify/v2/svg"
)

// Media types produced by the renderer.
const (
	ContentTypeSVG  = "image/svg+xml"
	ContentTypeHTML = "text/html; charset=utf-8"

	mediaSVG  = "image/svg+xml"
	mediaHTML = "text/html"
)

const (
	defaultTitle = "Doping in Professional Bicycle Racing"
	xmlHeader    = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
)

// Renderer writes documents as markup. It holds no per-document state and is
// safe for concurrent use.
type Renderer struct {
	title    string
	minify   bool
	minifier *minify.M
}

// New constructs a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{title: defaultTitle}
	for _, opt := range opts {
		opt(r)
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc(mediaHTML, mhtml.Minify)
	m.AddFunc(mediaSVG, msvg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	r.minifier = m
	return r
}

// WriteSVG writes the first chart panel of doc as a standalone SVG file.
func (r *Renderer) WriteSVG(w io.Writer, doc *chart.Document) error {
	panels := doc.Panels()
	if len(panels) == 0 {
		return ErrNoPanel
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := encode(&buf, panels[0]); err != nil {
		return err
	}
	return r.emit(w, mediaSVG, &buf)
}

// WritePage writes doc as a complete HTML page with the tooltip script.
func (r *Renderer) WritePage(w io.Writer, doc *chart.Document) error {
	if len(doc.Panels()) == 0 {
		return ErrNoPanel
	}

	var body strings.Builder
	for _, c := range doc.Body.Children {
		body.WriteString(Markup(c))
		body.WriteByte('\n')
	}

	data := pageData{
		Title:     r.title,
		Subtitle:  fmt.Sprintf("%d Fastest times up Alpe d'Huez", len(doc.Marks())),
		Body:      template.HTML(body.String()), //nolint:gosec // markup built from escaped scene nodes
		TooltipID: chart.TooltipID,
		MarkClass: chart.MarkClass,
		FadeInMS:  chart.FadeInDuration.Milliseconds(),
		FadeOutMS: chart.FadeOutDuration.Milliseconds(),
		OffsetX:   chart.PointerOffsetX,
		OffsetY:   chart.PointerOffsetY,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return r.emit(w, mediaHTML, &buf)
}

func (r *Renderer) emit(w io.Writer, mediatype string, buf *bytes.Buffer) error {
	if !r.minify {
		_, err := buf.WriteTo(w)
		return err
	}
	if err := r.minifier.Minify(mediatype, w, buf); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMinify, mediatype, err)
	}
	return nil
}
