// Package chart builds the race-time scatterplot as a scene graph.
//
// The builder decides what to draw; renderers in the adapters layer decide
// how. A Document is created once per page and the builder attaches one svg
// panel plus one tooltip overlay to it on every Render call.
package chart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/okian/tourplot/internal/domain/model"
	"github.com/okian/tourplot/internal/domain/scale"
)

// MarkClass is the class shared by all data marks.
const MarkClass = "dot"

// Default layout, matching the published chart.
const (
	defaultWidth      = 1200
	defaultHeight     = 500
	defaultPadding    = 60
	defaultMarkRadius = 5
	defaultTickCount  = 10
	xTickSize         = 5
	legendOffsetX     = 250
	legendOffsetY     = 40
	legendSwatch      = 10
	xLabelDrop        = 20
)

// Default colors and captions.
const (
	DefaultAllegationColor = "orange"
	DefaultNeutralColor    = "blue"
	DefaultXLabel          = "Year"
	DefaultYLabel          = "Time in Minutes and Seconds"
	DefaultNeutralLegend   = "No Doping Allegations"
	DefaultAllegedLegend   = "Doping Allegations Made"
)

// timeEpoch anchors parsed race times on a calendar date for data-yvalue.
var timeEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Builder turns race records into scene nodes.
type Builder struct {
	width, height    float64
	padding          float64
	markRadius       float64
	allegationColor  string
	neutralColor     string
	xLabel, yLabel   string
	neutralLegend    string
	allegationLegend string
	tickCount        int
}

// NewBuilder constructs a Builder with the published chart defaults.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		width:            defaultWidth,
		height:           defaultHeight,
		padding:          defaultPadding,
		markRadius:       defaultMarkRadius,
		allegationColor:  DefaultAllegationColor,
		neutralColor:     DefaultNeutralColor,
		xLabel:           DefaultXLabel,
		yLabel:           DefaultYLabel,
		neutralLegend:    DefaultNeutralLegend,
		allegationLegend: DefaultAllegedLegend,
		tickCount:        defaultTickCount,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Size returns the canvas width and height.
func (b *Builder) Size() (float64, float64) { return b.width, b.height }

// Scales holds the two derived scales of a render pass.
type Scales struct {
	X scale.Time
	Y scale.Duration
}

// Scales derives the X and Y scales from the dataset extent.
func (b *Builder) Scales(records []model.RaceRecord) (Scales, error) {
	if len(records) == 0 {
		return Scales{}, ErrEmptyDataset
	}
	minYear, maxYear := records[0].Year, records[0].Year
	var fastest, slowest time.Duration
	for i, r := range records {
		d, err := r.Duration()
		if err != nil {
			return Scales{}, fmt.Errorf("record %d: %w", i, err)
		}
		if i == 0 || d < fastest {
			fastest = d
		}
		if i == 0 || d > slowest {
			slowest = d
		}
		minYear = min(minYear, r.Year)
		maxYear = max(maxYear, r.Year)
	}
	return Scales{
		X: scale.NewTime(scale.YearStart(minYear), scale.YearStart(maxYear), b.padding, b.width-b.padding),
		// Slowest at the bottom edge, fastest at the top edge.
		Y: scale.NewDuration(slowest, fastest, b.height-b.padding, b.padding),
	}, nil
}

// Build creates a fresh document and renders the chart into it.
func (b *Builder) Build(records []model.RaceRecord) (*Document, error) {
	doc := NewDocument(DefaultContainerID)
	if err := b.Render(doc, records); err != nil {
		return nil, err
	}
	return doc, nil
}

// Render appends one chart panel to the document container and one tooltip
// overlay to its body. Calling it twice on the same document draws the chart
// twice.
func (b *Builder) Render(doc *Document, records []model.RaceRecord) error {
	sc, err := b.Scales(records)
	if err != nil {
		return err
	}

	svg := NewNode(KindSVG).
		Set("xmlns", "http://www.w3.org/2000/svg").
		SetFloat("width", b.width).
		SetFloat("height", b.height).
		Set("data-render-id", doc.ID)

	for _, r := range records {
		svg.Append(b.mark(r, sc))
	}

	svg.Append(b.xAxis(sc), b.yAxis(sc))
	svg.Append(b.captions()...)
	svg.Append(b.legend())

	doc.Container.Append(svg)
	doc.Body.Append(newTooltipNode())
	return nil
}

func (b *Builder) mark(r model.RaceRecord, sc Scales) *Node {
	// Durations were validated by Scales.
	d, _ := r.Duration()
	fill := b.neutralColor
	if r.HasAllegation() {
		fill = b.allegationColor
	}
	return NewNode(KindCircle).
		Set("class", MarkClass).
		Set("data-xvalue", strconv.Itoa(r.Year)).
		Set("data-yvalue", timeEpoch.Add(d).Format("2006-01-02T15:04:05.000Z")).
		Set("data-time", r.Time).
		Set("data-tooltip", TooltipHTML(r)).
		SetFloat("cx", sc.X.Map(scale.YearStart(r.Year))).
		SetFloat("cy", sc.Y.Map(d)).
		SetFloat("r", b.markRadius).
		Set("fill", fill)
}

func (b *Builder) xAxis(sc Scales) *Node {
	lo, hi := sc.X.Domain()
	var ticks []tick
	for _, y := range scale.YearTicks(lo.Year(), hi.Year(), b.tickCount) {
		ticks = append(ticks, tick{pos: sc.X.Map(scale.YearStart(y)), label: strconv.Itoa(y)})
	}
	g := bottomAxis(ticks, b.padding, b.width-b.padding, xTickSize).Set("id", "x-axis")
	g.Transform = Transform{TY: b.height - b.padding}
	return g
}

func (b *Builder) yAxis(sc Scales) *Node {
	slowest, fastest := sc.Y.Domain()
	var ticks []tick
	for _, d := range scale.DurationTicks(fastest, slowest, b.tickCount) {
		ticks = append(ticks, tick{pos: sc.Y.Map(d), label: model.FormatRaceTime(d)})
	}
	gridSize := -(b.width - 2*b.padding)
	g := leftAxis(ticks, b.padding, b.height-b.padding, gridSize).Set("id", "y-axis")
	g.Transform = Transform{TX: b.padding}
	return g
}

func (b *Builder) captions() []*Node {
	y := NewNode(KindText).
		Set("class", "y-axis-label").
		Set("text-anchor", "middle")
	y.Transform = Transform{TX: b.padding / 4, TY: b.height / 2, Rotate: -90}
	y.Text = b.yLabel

	x := NewNode(KindText).
		Set("class", "x-axis-label").
		Set("text-anchor", "middle")
	x.Transform = Transform{TX: b.width / 2, TY: b.height - b.padding/2 + xLabelDrop}
	x.Text = b.xLabel
	return []*Node{y, x}
}

func (b *Builder) legend() *Node {
	g := NewNode(KindGroup).Set("id", "legend")
	g.Transform = Transform{TX: b.width - legendOffsetX, TY: b.height - legendOffsetY}

	rows := []struct {
		color, label string
	}{
		{b.neutralColor, b.neutralLegend},
		{b.allegationColor, b.allegationLegend},
	}
	for i, row := range rows {
		cy := legendSwatch + float64(i)*2*legendSwatch
		label := NewNode(KindText).
			SetFloat("x", 3*legendSwatch).
			SetFloat("y", cy+5)
		label.Text = row.label
		g.Append(
			NewNode(KindCircle).
				Set("class", "legend-swatch").
				SetFloat("cx", legendSwatch).
				SetFloat("cy", cy).
				SetFloat("r", legendSwatch).
				SetStyle("fill", row.color),
			label,
		)
	}
	return g
}
