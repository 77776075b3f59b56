package render

import "log/slog"

// Defaults for the triangle inside test.
const (
	// DefaultInsideEpsilon is the slack allowed when the three sub-triangle
	// areas of a sample are compared with the triangle area.
	DefaultInsideEpsilon = 0.01
	// DefaultMinCoverage is the smallest sub-area sum that is shaded. Samples
	// below it, and so every triangle with an area below it, are skipped.
	DefaultMinCoverage = 1.0
)

// Option configures a Rasterizer during creation.
//
// Example:
//
//	r, err := render.New(800, 600,
//	    render.WithPresenter(p),
//	    render.WithMinCoverage(0.5),
//	)
type Option func(*options)

type options struct {
	provider      BufferProvider
	presenter     Presenter
	insideEpsilon float64
	minCoverage   float64
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		provider:      DefaultProvider(),
		insideEpsilon: DefaultInsideEpsilon,
		minCoverage:   DefaultMinCoverage,
	}
}

// WithBufferProvider sets where the two colour buffers come from.
// The default allocates them with NewFramebuffer.
func WithBufferProvider(p BufferProvider) Option {
	return func(o *options) {
		if p != nil {
			o.provider = p
		}
	}
}

// WithPresenter sets the presenter that receives the back buffer on every
// SwapBuffers.
func WithPresenter(p Presenter) Option {
	return func(o *options) {
		o.presenter = p
	}
}

// WithInsideEpsilon sets the area slack of the triangle inside test.
func WithInsideEpsilon(eps float64) Option {
	return func(o *options) {
		o.insideEpsilon = eps
	}
}

// WithMinCoverage sets the smallest sub-area sum a triangle sample needs to be
// shaded. Zero disables the check.
func WithMinCoverage(area float64) Option {
	return func(o *options) {
		o.minCoverage = area
	}
}

// WithLogger sets the logger for this rasterizer, overriding the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
