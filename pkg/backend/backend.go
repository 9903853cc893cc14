// Package backend invokes external document converters. A Backend takes a
// filled document package on disk and produces the converted output file,
// typically a PDF.
package backend

import "context"

// Backend converts a document file into another format.
type Backend interface {
	// Name identifies the backend in registries, logs, and request
	// options.
	Name() string
	// Convert reads inputPath and writes the converted document to
	// outputPath, creating parent directories as needed.
	Convert(ctx context.Context, inputPath, outputPath string) error
}
