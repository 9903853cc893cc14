package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-docgen/internal/subproc"
)

const (
	defaultSofficeBinary  = "soffice"
	defaultSofficeFormat  = "pdf"
	defaultSofficeTimeout = 2 * time.Minute
)

// SofficeOption configures the LibreOffice backend.
type SofficeOption func(*Soffice)

// WithBinary overrides the soffice executable, such as a full path to a
// specific installation.
func WithBinary(path string) SofficeOption {
	return func(s *Soffice) {
		if path != "" {
			s.binary = path
		}
	}
}

// WithFormat sets the --convert-to target. Defaults to "pdf"; the value may
// carry an export filter suffix such as "pdf:writer_pdf_Export".
func WithFormat(format string) SofficeOption {
	return func(s *Soffice) {
		if format != "" {
			s.format = format
		}
	}
}

// WithTimeout bounds a single conversion run. Defaults to two minutes.
func WithTimeout(d time.Duration) SofficeOption {
	return func(s *Soffice) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithExtraArgs appends arguments before the input path, for flags such as
// -env:UserInstallation.
func WithExtraArgs(args ...string) SofficeOption {
	return func(s *Soffice) {
		s.extra = append(s.extra, args...)
	}
}

// Soffice converts documents by driving LibreOffice in headless mode.
// Values are safe for concurrent use, though LibreOffice itself serializes
// conversions per user profile.
type Soffice struct {
	binary  string
	format  string
	timeout time.Duration
	extra   []string
}

var _ Backend = (*Soffice)(nil)

// NewSoffice constructs the LibreOffice backend applying any provided
// options.
func NewSoffice(options ...SofficeOption) *Soffice {
	s := &Soffice{
		binary:  defaultSofficeBinary,
		format:  defaultSofficeFormat,
		timeout: defaultSofficeTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Name implements Backend.
func (s *Soffice) Name() string {
	return "soffice"
}

// Convert renders inputPath into the configured format. LibreOffice always
// names output after the input file, so the conversion runs against a
// staging directory next to outputPath and the produced file is renamed
// into place. Staying on one filesystem keeps the rename atomic.
func (s *Soffice) Convert(ctx context.Context, inputPath, outputPath string) error {
	outDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("backend %s: create output dir: %w", s.Name(), err)
	}
	stage, err := os.MkdirTemp(outDir, ".docgen-convert-*")
	if err != nil {
		return fmt.Errorf("backend %s: create staging dir: %w", s.Name(), err)
	}
	defer os.RemoveAll(stage)

	args := []string{"--headless", "--norestore", "--convert-to", s.format, "--outdir", stage}
	args = append(args, s.extra...)
	args = append(args, inputPath)

	res, err := subproc.Run(ctx, s.binary, args, subproc.Options{Timeout: s.timeout})
	if err != nil {
		return &CommandError{Backend: s.Name(), ExitCode: res.ExitCode, Stderr: res.Stderr, Err: err}
	}

	// soffice can exit zero without converting, for example when no
	// export filter matches. Only the produced file proves success.
	produced := filepath.Join(stage, producedName(inputPath, s.format))
	if _, err := os.Stat(produced); err != nil {
		return &CommandError{
			Backend:  s.Name(),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Err:      fmt.Errorf("no output produced at %s", produced),
		}
	}
	if err := os.Rename(produced, outputPath); err != nil {
		return fmt.Errorf("backend %s: move output into place: %w", s.Name(), err)
	}
	return nil
}

// producedName is the file name LibreOffice writes for inputPath: the input
// stem plus the format's extension, with any export filter suffix dropped.
func producedName(inputPath, format string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ext, _, _ := strings.Cut(format, ":")
	return stem + "." + ext
}
