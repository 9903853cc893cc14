package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-docgen/pkg/archive"
	"github.com/goliatone/go-docgen/pkg/backend"
	"github.com/goliatone/go-docgen/pkg/manifest"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option customises the converter configuration.
type Option func(*converterOptions)

type converterOptions struct {
	renderer   render.Renderer
	registry   *backend.Registry
	logger     *zap.Logger
	manifest   *manifest.Manifest
	translator render.Translator
	backends   []backend.Backend
}

// WithRenderer injects a template renderer, replacing the default engine.
func WithRenderer(r render.Renderer) Option {
	return func(o *converterOptions) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithBackend registers a conversion backend. The last injected backend
// becomes the default unless Config.DefaultBackend names one explicitly.
func WithBackend(b backend.Backend) Option {
	return func(o *converterOptions) {
		if b != nil {
			o.backends = append(o.backends, b)
		}
	}
}

// WithRegistry replaces the backend registry. The registry is used as
// given; no default backend is added to it.
func WithRegistry(reg *backend.Registry) Option {
	return func(o *converterOptions) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithLogger sets the logger for run-state and step logging. Defaults to a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *converterOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithManifest sets a manifest whose defaults and validation rules are
// applied to every request's data before extraction.
func WithManifest(m *manifest.Manifest) Option {
	return func(o *converterOptions) {
		o.manifest = m
	}
}

// WithTranslator wires translation helpers into the default engine. It has
// no effect when WithRenderer supplies one.
func WithTranslator(t render.Translator) Option {
	return func(o *converterOptions) {
		o.translator = t
	}
}

// Converter runs the document pipeline. Construct one and share it: it
// holds no per-run state, so concurrent Convert calls are safe as long as
// runs do not share a document id (or Config.UniqueRunSuffix is on).
type Converter struct {
	cfg      Config
	renderer render.Renderer
	registry *backend.Registry
	manifest *manifest.Manifest
	log      *zap.Logger
}

// New builds a Converter from cfg, filling defaults for unset fields and
// wiring default collaborators for any not injected: the pongo2 engine and
// a registry holding the LibreOffice backend.
func New(cfg Config, options ...Option) (*Converter, error) {
	o := &converterOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	explicitDefault := cfg.DefaultBackend != ""
	c := &Converter{
		cfg:      cfg.withDefaults(),
		renderer: o.renderer,
		registry: o.registry,
		manifest: o.manifest,
		log:      o.logger,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}

	autoRegistry := c.registry == nil
	if autoRegistry {
		c.registry = backend.NewRegistry()
	}
	for _, b := range o.backends {
		if err := c.registry.Register(b); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}
	if autoRegistry && len(o.backends) == 0 {
		c.registry.MustRegister(backend.NewSoffice())
	}
	if !explicitDefault && len(o.backends) > 0 {
		c.cfg.DefaultBackend = o.backends[len(o.backends)-1].Name()
	}

	if c.renderer == nil {
		var renderOpts []render.Option
		if o.translator != nil {
			renderOpts = append(renderOpts, render.WithTranslator(o.translator))
		}
		engine, err := render.New(renderOpts...)
		if err != nil {
			return nil, fmt.Errorf("pipeline: default renderer: %w", err)
		}
		c.renderer = engine
	}
	return c, nil
}

// Convert executes one run: extract, render, repack, convert, clean up.
// Failure at any step aborts the run and, unless Config.CleanupOnFailure
// is set, leaves the temporary state in place for inspection.
func (c *Converter) Convert(ctx context.Context, req *Request) error {
	if ctx == nil {
		return errors.New("pipeline: context is required")
	}
	if req == nil {
		return errors.New("pipeline: request is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := req.Data()
	if c.manifest != nil {
		data = c.manifest.ApplyDefaults(data)
		if err := c.manifest.Validate(data); err != nil {
			return fmt.Errorf("pipeline: validate data: %w", err)
		}
	}

	ws := NewWorkspace(c.cfg.TempRoot, req.DocumentID(), req.SourcePath(), c.runSuffix())
	log := c.log.With(zap.String("document_id", req.DocumentID()))

	state := StateExtracting
	log.Debug("run state", zap.Stringer("state", state), zap.String("workspace", ws.Dir))

	success := false
	defer func() {
		if success || !c.cfg.CleanupOnFailure {
			return
		}
		if err := removeWorkspace(ws); err != nil {
			log.Warn("cleanup after failed run", zap.Error(err))
		}
	}()

	if err := archive.Extract(req.SourcePath(), ws.Dir); err != nil {
		return fmt.Errorf("pipeline: extract %q: %w", req.SourcePath(), err)
	}

	if err := advance(log, &state, StateRendering); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data[render.LanguageKey] = ResolveLanguage(req.Language(), c.cfg.Language)
	for _, member := range c.cfg.RenderMembers {
		if err := c.renderMember(ctx, ws.Dir, member, data); err != nil {
			return err
		}
	}

	if err := advance(log, &state, StateRepacking); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := archive.Repack(ws.Dir, ws.Archive); err != nil {
		return fmt.Errorf("pipeline: repack %q: %w", ws.Dir, err)
	}

	if err := advance(log, &state, StateConverting); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	conv, err := c.backendFor(req.Backend())
	if err != nil {
		return err
	}
	log.Debug("converting document",
		zap.String("backend", conv.Name()),
		zap.String("output", req.OutputPath()))
	if err := conv.Convert(ctx, ws.Archive, req.OutputPath()); err != nil {
		return fmt.Errorf("pipeline: convert with %s: %w", conv.Name(), err)
	}

	if err := advance(log, &state, StateCleaningUp); err != nil {
		return err
	}
	if err := removeWorkspace(ws); err != nil {
		return err
	}

	if err := advance(log, &state, StateDone); err != nil {
		return err
	}
	success = true
	return nil
}

// renderMember runs one archive member through the engine in place,
// preserving the file's mode.
func (c *Converter) renderMember(ctx context.Context, dir, member string, data map[string]any) error {
	path := filepath.Join(dir, filepath.FromSlash(member))
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("pipeline: render member %q: %w", member, err)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("pipeline: render member %q: %w", member, err)
	}
	rendered, err := c.renderer.Render(ctx, source, data)
	if err != nil {
		return fmt.Errorf("pipeline: render member %q: %w", member, err)
	}
	if err := os.WriteFile(path, rendered, info.Mode().Perm()); err != nil {
		return fmt.Errorf("pipeline: write member %q: %w", member, err)
	}
	return nil
}

func (c *Converter) backendFor(name string) (backend.Backend, error) {
	target := name
	if target == "" {
		target = c.cfg.DefaultBackend
	}
	b, err := c.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return b, nil
}

func (c *Converter) runSuffix() string {
	if !c.cfg.UniqueRunSuffix {
		return ""
	}
	return uuid.NewString()[:8]
}

// advance moves the run to the next state, enforcing the linear order.
func advance(log *zap.Logger, current *State, next State) error {
	if err := current.Transition(next); err != nil {
		return err
	}
	*current = next
	log.Debug("run state", zap.Stringer("state", next))
	return nil
}

// removeWorkspace deletes the run's directory and intermediate archive. A
// missing archive is fine; a run cleaned up before repacking never made
// one.
func removeWorkspace(ws Workspace) error {
	if err := os.RemoveAll(ws.Dir); err != nil {
		return fmt.Errorf("pipeline: remove workspace %q: %w", ws.Dir, err)
	}
	if err := os.Remove(ws.Archive); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("pipeline: remove archive %q: %w", ws.Archive, err)
	}
	return nil
}
