// Command docgen-cli fills an OpenDocument template package with data and
// converts the result with an external backend.
//
// Configuration is resolved in precedence order: flags, then DOCGEN_*
// environment variables (a .env file is honored when present), then a
// docgen.yaml config file, then built-in defaults.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	docgen "github.com/goliatone/go-docgen"
	"github.com/goliatone/go-docgen/components/moneyfmt/docgenwiring"
	"github.com/goliatone/go-docgen/pkg/backend"
	"github.com/goliatone/go-docgen/pkg/manifest"
	"github.com/goliatone/go-docgen/pkg/render"
)

func main() {
	flag.String("template", "", "template package to fill")
	flag.String("output", "", "output document path (derived from the template when empty)")
	flag.String("data", "", "YAML or JSON file with template data")
	flag.String("backend", "", "converter backend name (default soffice)")
	flag.String("format", "", "backend output format, e.g. pdf or docx (default pdf)")
	flag.String("lang", "", "language code injected into the render, e.g. pl or en-US")
	flag.String("manifest", "", "manifest describing the template fields")
	flag.String("messages", "", "YAML message catalog backing translate()")
	flag.String("temp-root", "", "directory holding per-run temp state")
	flag.Bool("keep-temp", false, "keep temp state after a failed run")
	flag.Duration("timeout", 0, "bound for the whole conversion, e.g. 90s")
	configFile := flag.String("config", "", "config file (default docgen.yaml in the working directory)")
	flag.Bool("verbose", false, "verbose logging")
	interactive := flag.Bool("interactive", false, "prompt for manifest fields missing from the data")
	initTemplate := flag.Bool("init", false, "write a starter template and manifest skeleton, then exit")
	var sets setFlags
	flag.Var(&sets, "set", "set one data value as key=value (repeatable)")
	flag.Parse()

	opts, err := resolveSettings(*configFile)
	if err != nil {
		log.Fatalf("Failed to resolve configuration: %v", err)
	}

	if *initTemplate {
		if err := runInit(opts.Template, opts.Manifest); err != nil {
			log.Fatalf("Failed to init template: %v", err)
		}
		return
	}

	if opts.Template == "" {
		log.Fatal("A template is required: pass -template or set DOCGEN_TEMPLATE")
	}

	data, err := loadData(opts.DataFile, sets)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	var m *manifest.Manifest
	if opts.Manifest != "" {
		m, err = manifest.Load(opts.Manifest)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}
	}

	if *interactive {
		if err := promptMissing(m, data); err != nil {
			log.Fatalf("Failed to collect data: %v", err)
		}
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	renderOptions := []render.Option{docgenwiring.MoneyFilter()}
	if opts.Messages != "" {
		catalog, err := render.LoadCatalog(opts.Messages)
		if err != nil {
			log.Fatalf("Failed to load message catalog: %v", err)
		}
		renderOptions = append(renderOptions, render.WithTranslator(catalog))
	}
	engine, err := render.New(renderOptions...)
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	conv, err := docgen.New(docgen.Config{
		TempRoot:         opts.TempRoot,
		Language:         opts.Language,
		DefaultBackend:   opts.Backend,
		CleanupOnFailure: !opts.KeepTemp,
	},
		docgen.WithRenderer(engine),
		docgen.WithBackend(newSofficeBackend(opts)),
		docgen.WithManifest(m),
		docgen.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to build converter: %v", err)
	}

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = derivedOutputPath(opts.Template, opts.Format)
	}

	req, err := docgen.NewRequest(opts.Template, outputPath, data)
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if err := conv.Convert(ctx, req); err != nil {
		log.Fatalf("Failed to convert document: %v", err)
	}
	fmt.Printf("Document written to %s\n", outputPath)
}

// setFlags collects repeated -set key=value pairs.
type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func runInit(templatePath, manifestPath string) error {
	if templatePath == "" {
		templatePath = "template.odt"
	}
	if manifestPath == "" {
		manifestPath = strings.TrimSuffix(templatePath, filepath.Ext(templatePath)) + ".manifest.yaml"
	}
	for _, path := range []string{templatePath, manifestPath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := docgen.WriteStarterTemplate(templatePath); err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, docgen.StarterManifest(), 0o644); err != nil {
		return fmt.Errorf("write manifest skeleton: %w", err)
	}
	fmt.Printf("Template written to %s\n", templatePath)
	fmt.Printf("Manifest skeleton written to %s\n", manifestPath)
	return nil
}

// loadData reads the data file (YAML or JSON, one decoder covers both) and
// layers -set pairs on top. Set values are YAML-scalar parsed so "42" and
// "true" keep their types.
func loadData(path string, sets []string) (map[string]any, error) {
	data := map[string]any{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", path, err)
		}
	}
	for _, pair := range sets {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("-set %q: want key=value", pair)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		data[key] = value
	}
	return data, nil
}

func newSofficeBackend(opts *settings) *backend.Soffice {
	options := []backend.SofficeOption{backend.WithFormat(opts.Format)}
	if opts.Timeout > 0 {
		options = append(options, backend.WithTimeout(opts.Timeout))
	}
	return backend.NewSoffice(options...)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// derivedOutputPath swaps the template extension for the backend format's,
// so template.odt converted to "pdf:writer_pdf_Export" lands in template.pdf.
func derivedOutputPath(template, format string) string {
	ext, _, _ := strings.Cut(format, ":")
	return strings.TrimSuffix(template, filepath.Ext(template)) + "." + ext
}
