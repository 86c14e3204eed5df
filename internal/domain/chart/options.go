package chart

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithSize sets the canvas size in pixels.
func WithSize(width, height float64) Option {
	return func(b *Builder) {
		if width > 0 && height > 0 {
			b.width = width
			b.height = height
		}
	}
}

// WithPadding sets the margin between the canvas edge and the plot area.
func WithPadding(padding float64) Option {
	return func(b *Builder) {
		if padding >= 0 {
			b.padding = padding
		}
	}
}

// WithMarkRadius sets the radius of each data mark.
func WithMarkRadius(radius float64) Option {
	return func(b *Builder) {
		if radius > 0 {
			b.markRadius = radius
		}
	}
}

// WithColors sets the fill of marks with and without a doping allegation.
func WithColors(allegation, neutral string) Option {
	return func(b *Builder) {
		if allegation != "" {
			b.allegationColor = allegation
		}
		if neutral != "" {
			b.neutralColor = neutral
		}
	}
}

// WithAxisLabels sets the axis captions.
func WithAxisLabels(x, y string) Option {
	return func(b *Builder) {
		if x != "" {
			b.xLabel = x
		}
		if y != "" {
			b.yLabel = y
		}
	}
}

// WithLegendLabels sets the legend captions.
func WithLegendLabels(neutral, allegation string) Option {
	return func(b *Builder) {
		if neutral != "" {
			b.neutralLegend = neutral
		}
		if allegation != "" {
			b.allegationLegend = allegation
		}
	}
}

// WithTickCount sets the approximate number of ticks per axis.
func WithTickCount(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.tickCount = n
		}
	}
}
