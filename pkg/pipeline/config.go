package pipeline

import (
	"os"
	"path/filepath"
)

const (
	// DefaultBackendName selects the LibreOffice backend when neither the
	// configuration nor the request names one.
	DefaultBackendName = "soffice"

	defaultTempDirName = "docgen"
)

// DefaultRenderMembers are the archive members run through the template
// engine when the configuration does not name its own set.
func DefaultRenderMembers() []string {
	return []string{"content.xml", "styles.xml"}
}

// Config carries the converter's settings. The zero value is usable; every
// field has a default applied at construction.
type Config struct {
	// TempRoot hosts the per-run working directories and intermediate
	// archives. Defaults to a docgen directory under the system temp
	// directory.
	TempRoot string

	// Language is the fallback language code when a request does not
	// override it. Defaults to DefaultLanguageCode.
	Language string

	// DefaultBackend names the registry backend used when a request does
	// not select one. Defaults to DefaultBackendName.
	DefaultBackend string

	// RenderMembers lists the archive members run through the template
	// engine, as slash-separated paths relative to the archive root.
	// Defaults to DefaultRenderMembers.
	RenderMembers []string

	// CleanupOnFailure removes the run's temporary state even when the
	// run fails. Off by default, which leaves failed-run artifacts in
	// place for inspection.
	CleanupOnFailure bool

	// UniqueRunSuffix namespaces each run's workspace with a random
	// suffix so concurrent runs sharing a document id cannot collide.
	UniqueRunSuffix bool
}

func (c Config) withDefaults() Config {
	if c.TempRoot == "" {
		c.TempRoot = filepath.Join(os.TempDir(), defaultTempDirName)
	}
	if c.Language == "" {
		c.Language = DefaultLanguageCode
	}
	if c.DefaultBackend == "" {
		c.DefaultBackend = DefaultBackendName
	}
	if len(c.RenderMembers) == 0 {
		c.RenderMembers = DefaultRenderMembers()
	}
	return c
}
