package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*frameRenderer)

// WithPlaceholderPipeline enables binding the degenerate placeholder pipeline
// during the clear pass. The pipeline draws no visible geometry; the frame's
// output is identical to a plain clear. Off by default.
//
// Parameters:
//   - enabled: true to bind the placeholder pipeline each frame
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithPlaceholderPipeline(enabled bool) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.usePipeline = enabled
	}
}
