// Package render evaluates document templates against caller data. The
// engine is sandboxed: templates can interpolate expressions over the
// supplied mapping but cannot reach the filesystem, the environment, or any
// other process state.
package render

import "context"

// Renderer turns raw template content into rendered bytes using the
// supplied data mapping.
type Renderer interface {
	Name() string
	Render(ctx context.Context, source []byte, data map[string]any) ([]byte, error)
}

// FilterFunc is the plain-Go shape of a template filter. The input is the
// piped value; param carries the filter argument when one is given.
type FilterFunc func(input any, param any) (any, error)
