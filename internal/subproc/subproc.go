// Package subproc runs external commands with a timeout, graceful
// termination, and capped stderr capture.
package subproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// maxStderrBytes caps captured stderr so a chatty converter cannot balloon
// error payloads.
const maxStderrBytes = 64 * 1024

const defaultKillGrace = 5 * time.Second

// ErrTimeout marks commands terminated because their deadline elapsed.
var ErrTimeout = errors.New("command timed out")

// Result carries the observable outcome of a finished command.
type Result struct {
	ExitCode int
	Stderr   string
}

// Options control how a command is run.
type Options struct {
	// Timeout bounds the command's total runtime. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration
	// KillGrace is how long the process gets to exit after SIGTERM before
	// it is killed. Defaults to five seconds.
	KillGrace time.Duration
	// Dir sets the command's working directory.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
}

// Run executes name with args and waits for completion. Stdout is
// discarded; stderr is captured up to 64 KiB and truncation is marked. A
// command that exceeds its deadline is sent SIGTERM and, after the kill
// grace, killed; the returned error then matches ErrTimeout. A non-zero
// exit reports the code in Result alongside the error.
func Run(ctx context.Context, name string, args []string, opts Options) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.KillGrace <= 0 {
		opts.KillGrace = defaultKillGrace
	}

	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	stderr := &cappedBuffer{max: maxStderrBytes}
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = opts.KillGrace

	err := cmd.Run()

	res := Result{ExitCode: -1, Stderr: stderr.String()}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return res, nil
	}

	if opts.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return res, fmt.Errorf("subproc: %s after %s: %w", name, opts.Timeout, ErrTimeout)
	}
	return res, fmt.Errorf("subproc: %s: %w", name, err)
}

// cappedBuffer accepts all writes but retains only the first max bytes.
type cappedBuffer struct {
	max       int
	truncated bool
	buf       bytes.Buffer
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	remain := b.max - b.buf.Len()
	if remain <= 0 {
		b.truncated = true
		return len(p), nil
	}
	if len(p) > remain {
		b.buf.Write(p[:remain])
		b.truncated = true
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + "\n[stderr truncated]"
	}
	return b.buf.String()
}
