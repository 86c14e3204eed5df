package chart

import (
	"fmt"
	"html"
	"strconv"
	"time"

	"github.com/okian/tourplot/internal/domain/model"
)

// Tooltip element and hover behavior constants.
const (
	TooltipID       = "tooltip"
	FadeInDuration  = 200 * time.Millisecond
	FadeOutDuration = 500 * time.Millisecond
	PointerOffsetX  = 5
	PointerOffsetY  = -28
)

// Pointer is the page position of the mouse.
type Pointer struct {
	PageX, PageY float64
}

// Transition is an opacity fade of the tooltip.
type Transition struct {
	From, To float64
	Duration time.Duration
}

// TooltipHTML returns the overlay markup for a record. Record fields are escaped.
func TooltipHTML(r model.RaceRecord) string {
	s := fmt.Sprintf("%s: %s<br>Year: %d, Time: %s",
		html.EscapeString(r.Name), html.EscapeString(r.Nationality), r.Year, html.EscapeString(r.Time))
	if r.HasAllegation() {
		s += "<br><br>" + html.EscapeString(r.Doping)
	}
	return s
}

func newTooltipNode() *Node {
	return NewNode(KindDiv).
		Set("id", TooltipID).
		SetStyle("position", "absolute").
		SetStyle("opacity", "0").
		SetStyle("pointer-events", "none").
		SetStyle("background", "lightgray").
		SetStyle("padding", "5px").
		SetStyle("border-radius", "3px")
}

// Tooltip drives the shared overlay element in response to pointer events
// on marks. It is not safe for concurrent use; pointer events arrive one at
// a time.
type Tooltip struct {
	node *Node
	last Transition
}

// NewTooltip binds hover behavior to the document's tooltip element.
// It returns nil when the document has none.
func NewTooltip(doc *Document) *Tooltip {
	n := doc.Tooltip()
	if n == nil {
		return nil
	}
	return &Tooltip{node: n}
}

// Node returns the overlay element.
func (t *Tooltip) Node() *Node { return t.node }

// Opacity returns the opacity the overlay is fading towards.
func (t *Tooltip) Opacity() float64 {
	v, ok := t.node.StyleValue("opacity")
	if !ok {
		return 1
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// Visible reports whether the overlay is shown.
func (t *Tooltip) Visible() bool { return t.Opacity() > 0 }

// LastTransition returns the most recent fade.
func (t *Tooltip) LastTransition() Transition { return t.last }

// Enter fills the overlay with the mark's record, places it next to the
// pointer and fades it in.
func (t *Tooltip) Enter(mark *Node, p Pointer) (Transition, error) {
	if mark == nil || mark.Kind != KindCircle || !mark.HasClass(MarkClass) {
		return Transition{}, ErrInvalidMark
	}
	content, _ := mark.Get("data-tooltip")
	year, _ := mark.Get("data-xvalue")
	raceTime, _ := mark.Get("data-time")

	t.node.InnerHTML = content
	t.node.Set("data-year", year)
	t.node.Set("data-time", raceTime)
	t.node.SetStyle("left", FormatNumber(p.PageX+PointerOffsetX)+"px")
	t.node.SetStyle("top", FormatNumber(p.PageY+PointerOffsetY)+"px")
	return t.fade(1, FadeInDuration), nil
}

// Leave fades the overlay out. Content stays in place until the next Enter.
func (t *Tooltip) Leave() Transition {
	return t.fade(0, FadeOutDuration)
}

func (t *Tooltip) fade(to float64, d time.Duration) Transition {
	tr := Transition{From: t.Opacity(), To: to, Duration: d}
	t.node.SetStyle("opacity", FormatNumber(to))
	t.last = tr
	return tr
}
