package vector

// Option configures a Renderer.
type Option func(*Renderer)

// WithMinify compacts the produced markup, scripts and styles.
func WithMinify(enabled bool) Option {
	return func(r *Renderer) {
		r.minify = enabled
	}
}

// WithTitle sets the HTML page title and heading.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}
