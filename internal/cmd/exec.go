// Package cmd runs external commands with stderr-aware errors and verbose
// logging from the context logger.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/eltomello/autopass/internal/log"
)

// RunContext executes a command in dir (or the working directory if empty).
// On failure the trimmed stderr text becomes the error message when present.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, nil, false, name, args...)
	return err
}

// OutputContext executes a command and returns its stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, nil, true, name, args...)
}

// OutputInput executes a command with stdin wired to input and returns its
// stdout. Used for tools that transform data on a pipe, like gpg.
func OutputInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	return run(ctx, "", input, true, name, args...)
}

// RunInput executes a command with stdin wired to input, ignoring stdout.
func RunInput(ctx context.Context, input []byte, name string, args ...string) error {
	_, err := run(ctx, "", input, false, name, args...)
	return err
}

func run(ctx context.Context, dir string, input []byte, capture bool, name string, args ...string) ([]byte, error) {
	l := log.FromContext(ctx)
	done := l.Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if input != nil {
		c.Stdin = bytes.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	if capture {
		c.Stdout = &stdout
	}
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// LookPath reports whether a binary is available on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
