package render

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	filters    map[string]FilterFunc
	translator Translator
	onMissing  MissingTranslationHandler
}

// WithFilter registers a custom filter under name when the engine is built.
// Filter names are global to the process; a name that already exists fails
// construction.
func WithFilter(name string, fn FilterFunc) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]FilterFunc)
		}
		cfg.filters[name] = fn
	}
}

// WithTranslator wires the translate and current_lang helpers into every
// render, resolving messages for the data's lang_code value.
func WithTranslator(t Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// WithMissingTranslation overrides what the translation helpers emit when a
// message cannot be resolved. The default returns the key unchanged.
func WithMissingTranslation(h MissingTranslationHandler) Option {
	return func(cfg *config) {
		cfg.onMissing = h
	}
}

// Engine renders Django-syntax document templates. Parsed templates are
// cached by content digest, so filling many documents from the same template
// parses it once.
//
// Variables absent from the data render as empty output; callers that need
// strict checking validate data against a template manifest before
// rendering. Autoescaping stays on, which keeps rendered XML members
// well-formed when data values carry markup characters.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[[sha256.Size]byte]*pongo2.Template

	translator Translator
	onMissing  MissingTranslationHandler
}

var _ Renderer = (*Engine)(nil)

// New constructs an Engine using the provided options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	set := pongo2.NewSet("docgen", lockedLoader{})
	// File-reaching tags resolve through the loader, which refuses every
	// path; banning them surfaces the restriction at parse time.
	for _, tag := range []string{"include", "extends", "import", "ssi"} {
		_ = set.BanTag(tag)
	}

	registerBuiltinFilters()

	engine := &Engine{
		set:        set,
		cache:      make(map[[sha256.Size]byte]*pongo2.Template),
		translator: cfg.translator,
		onMissing:  cfg.onMissing,
	}
	if engine.onMissing == nil {
		engine.onMissing = missingTranslationDefault
	}

	for name, fn := range cfg.filters {
		if err := RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("render: register filter %q: %w", name, err)
		}
	}
	return engine, nil
}

// Name identifies the engine in logs and registries.
func (e *Engine) Name() string {
	return "pongo2"
}

// Render parses source as a template, evaluates it against data, and
// returns the rendered content as UTF-8 bytes. Parse failures match
// ErrSyntax; evaluation failures match ErrExecution.
func (e *Engine) Render(ctx context.Context, source []byte, data map[string]any) ([]byte, error) {
	if e == nil || e.set == nil {
		return nil, errors.New("render: engine is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpl, err := e.template(source)
	if err != nil {
		return nil, fmt.Errorf("render: parse template: %w: %w", ErrSyntax, err)
	}

	viewContext, err := e.buildContext(data)
	if err != nil {
		return nil, fmt.Errorf("render: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return nil, fmt.Errorf("render: execute template: %w: %w", ErrExecution, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) buildContext(data map[string]any) (pongo2.Context, error) {
	viewContext, err := convertMapToContext(data)
	if err != nil {
		return nil, err
	}
	// The helpers are installed even without a translator so templates
	// calling translate() degrade to the message key instead of failing.
	viewContext.Update(i18nContext(e.translator, languageOf(data), e.onMissing))
	return viewContext, nil
}

func (e *Engine) template(source []byte) (*pongo2.Template, error) {
	key := sha256.Sum256(source)

	e.mu.RLock()
	tmpl, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[key]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromBytes(source)
	if err != nil {
		return nil, err
	}
	e.cache[key] = tmpl
	return tmpl, nil
}

// lockedLoader keeps template resolution away from the filesystem. Every
// lookup fails, which is what confines include, extends, and ssi.
type lockedLoader struct{}

func (lockedLoader) Abs(_, name string) string {
	return name
}

func (lockedLoader) Get(path string) (io.Reader, error) {
	return nil, fmt.Errorf("render: template %q: file resolution is disabled", path)
}
