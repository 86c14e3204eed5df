package raster

// Option configures a Renderer.
type Option func(*Renderer)

// WithBackground sets the canvas color. Unknown colors keep the default.
func WithBackground(c string) Option {
	return func(r *Renderer) {
		if col, ok := parseColor(c); ok {
			r.background = col
		}
	}
}

// WithScale multiplies the output resolution, e.g. 2 for high-density screens.
func WithScale(s float64) Option {
	return func(r *Renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}
