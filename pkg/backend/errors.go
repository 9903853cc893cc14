package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConversion marks conversions that failed in the external converter.
var ErrConversion = errors.New("conversion failed")

// CommandError describes a converter invocation that failed. It matches
// ErrConversion through errors.Is and unwraps to the underlying cause.
type CommandError struct {
	Backend  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "backend %s: conversion failed", e.Backend)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if line := firstLine(e.Stderr); line != "" {
		fmt.Fprintf(&b, ": %s", line)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Err }

// Is reports ErrConversion so callers can match the failure class without
// inspecting the concrete type.
func (e *CommandError) Is(target error) bool { return target == ErrConversion }

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
