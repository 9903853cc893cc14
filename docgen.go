// Package docgen fills zipped OpenDocument templates with caller data and
// hands the result to an external converter backend. The root package
// re-exports the types most programs need so they can depend on docgen
// alone; the packages under pkg/ carry the full surface.
package docgen

import (
	"context"

	"github.com/goliatone/go-docgen/pkg/backend"
	"github.com/goliatone/go-docgen/pkg/manifest"
	"github.com/goliatone/go-docgen/pkg/pipeline"
	"github.com/goliatone/go-docgen/pkg/render"
	"go.uber.org/zap"
)

// Config is an alias of pipeline.Config so callers of the top level
// module don't need to import the pipeline package directly.
type Config = pipeline.Config

// Option is an alias of pipeline.Option.
type Option = pipeline.Option

// Converter is an alias of pipeline.Converter.
type Converter = pipeline.Converter

// Request is an alias of pipeline.Request.
type Request = pipeline.Request

// RequestOption is an alias of pipeline.RequestOption.
type RequestOption = pipeline.RequestOption

// Backend is an alias of backend.Backend for callers plugging in their
// own converter implementations.
type Backend = backend.Backend

// Renderer is an alias of render.Renderer for callers plugging in their
// own template engine.
type Renderer = render.Renderer

// Manifest is an alias of manifest.Manifest.
type Manifest = manifest.Manifest

// New exposes the converter constructor from the top level module.
func New(cfg Config, options ...Option) (*Converter, error) {
	return pipeline.New(cfg, options...)
}

// NewRequest exposes the request constructor from the top level module.
func NewRequest(source, output string, data map[string]any, options ...RequestOption) (*Request, error) {
	return pipeline.NewRequest(source, output, data, options...)
}

// WithBackend forwards pipeline.WithBackend.
func WithBackend(b Backend) Option {
	return pipeline.WithBackend(b)
}

// WithRenderer forwards pipeline.WithRenderer.
func WithRenderer(r Renderer) Option {
	return pipeline.WithRenderer(r)
}

// WithManifest forwards pipeline.WithManifest.
func WithManifest(m *Manifest) Option {
	return pipeline.WithManifest(m)
}

// WithLogger forwards pipeline.WithLogger.
func WithLogger(log *zap.Logger) Option {
	return pipeline.WithLogger(log)
}

// Convert fills the template package at source with data and writes the
// converted document to output. It builds a throwaway converter with the
// default configuration, so programs processing many documents should
// construct one with New and reuse it across calls.
func Convert(ctx context.Context, source, output string, data map[string]any, options ...Option) error {
	conv, err := pipeline.New(pipeline.Config{}, options...)
	if err != nil {
		return err
	}
	req, err := pipeline.NewRequest(source, output, data)
	if err != nil {
		return err
	}
	return conv.Convert(ctx, req)
}
