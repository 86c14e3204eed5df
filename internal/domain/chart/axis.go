package chart

import "math"

// Axis layout constants.
const (
	tickLabelOffset = 3
	axisFontSize    = "10"
	gridColor       = "lightgray"
	axisColor       = "currentColor"
)

type tick struct {
	pos   float64
	label string
}

// bottomAxis draws a horizontal axis along [r0, r1] with ticks hanging below.
func bottomAxis(ticks []tick, r0, r1, tickSize float64) *Node {
	g := NewNode(KindGroup).
		Set("fill", "none").
		Set("font-size", axisFontSize).
		Set("font-family", "sans-serif").
		Set("text-anchor", "middle")
	g.Append(NewNode(KindLine).
		Set("class", "domain").
		Set("stroke", axisColor).
		SetFloat("x1", r0).
		SetFloat("x2", r1))

	for _, t := range ticks {
		tg := NewNode(KindGroup).Set("class", "tick")
		tg.Transform = Transform{TX: t.pos}
		label := NewNode(KindText).
			Set("fill", axisColor).
			Set("text-anchor", "middle").
			SetFloat("y", math.Max(tickSize, 0)+tickLabelOffset).
			Set("dy", "0.71em")
		label.Text = t.label
		tg.Append(
			NewNode(KindLine).Set("stroke", tickStroke(tickSize)).SetFloat("y2", tickSize),
			label,
		)
		g.Append(tg)
	}
	return g
}

// leftAxis draws a vertical axis along [r0, r1] with ticks pointing left.
// A negative tickSize turns tick lines into gridlines across the plot.
func leftAxis(ticks []tick, r0, r1, tickSize float64) *Node {
	g := NewNode(KindGroup).
		Set("fill", "none").
		Set("font-size", axisFontSize).
		Set("font-family", "sans-serif").
		Set("text-anchor", "end")
	g.Append(NewNode(KindLine).
		Set("class", "domain").
		Set("stroke", axisColor).
		SetFloat("y1", r0).
		SetFloat("y2", r1))

	for _, t := range ticks {
		tg := NewNode(KindGroup).Set("class", "tick")
		tg.Transform = Transform{TY: t.pos}
		label := NewNode(KindText).
			Set("fill", axisColor).
			Set("text-anchor", "end").
			SetFloat("x", -(math.Max(tickSize, 0) + tickLabelOffset)).
			Set("dy", "0.32em")
		label.Text = t.label
		tg.Append(
			NewNode(KindLine).Set("stroke", tickStroke(tickSize)).SetFloat("x2", -tickSize),
			label,
		)
		g.Append(tg)
	}
	return g
}

func tickStroke(tickSize float64) string {
	if tickSize < 0 {
		return gridColor
	}
	return axisColor
}
