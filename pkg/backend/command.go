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
	// InputPlaceholder is replaced with the document path in command
	// backend arguments.
	InputPlaceholder = "{input}"
	// OutputPlaceholder is replaced with the destination path.
	OutputPlaceholder = "{output}"
)

// CommandOption configures a command backend.
type CommandOption func(*Command)

// WithCommandTimeout bounds a single conversion run. Zero leaves the run
// bounded only by the caller's context.
func WithCommandTimeout(d time.Duration) CommandOption {
	return func(c *Command) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCommandEnv appends KEY=VALUE entries to the converter's environment.
func WithCommandEnv(env ...string) CommandOption {
	return func(c *Command) {
		c.env = append(c.env, env...)
	}
}

// Command adapts an arbitrary converter program into a Backend. Occurrences
// of {input} and {output} in the argument list are replaced per conversion,
// and the program must write the converted document to the output path.
type Command struct {
	name    string
	program string
	argv    []string
	timeout time.Duration
	env     []string
}

var _ Backend = (*Command)(nil)

// NewCommand builds a backend that runs program with argv for each
// conversion. name is how requests select it from the registry.
func NewCommand(name, program string, argv []string, options ...CommandOption) (*Command, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("backend: command name is required")
	}
	if strings.TrimSpace(program) == "" {
		return nil, fmt.Errorf("backend: command program is required")
	}

	c := &Command{
		name:    name,
		program: program,
		argv:    append([]string(nil), argv...),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Name implements Backend.
func (c *Command) Name() string {
	return c.name
}

// Convert implements Backend.
func (c *Command) Convert(ctx context.Context, inputPath, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("backend %s: create output dir: %w", c.name, err)
	}

	args := make([]string, len(c.argv))
	for i, arg := range c.argv {
		arg = strings.ReplaceAll(arg, InputPlaceholder, inputPath)
		arg = strings.ReplaceAll(arg, OutputPlaceholder, outputPath)
		args[i] = arg
	}

	res, err := subproc.Run(ctx, c.program, args, subproc.Options{Timeout: c.timeout, Env: c.env})
	if err != nil {
		return &CommandError{Backend: c.name, ExitCode: res.ExitCode, Stderr: res.Stderr, Err: err}
	}

	if _, err := os.Stat(outputPath); err != nil {
		return &CommandError{
			Backend:  c.name,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Err:      fmt.Errorf("no output produced at %s", outputPath),
		}
	}
	return nil
}
