// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain locates and runs the external command line renderers
// (poppler-utils, pdf2svg, librsvg) that do the actual PDF and SVG work.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Tool is an external program that can be checked for and executed.
type Tool interface {
	// Name returns the tool's display name (e.g. "pdftocairo").
	Name() string

	// Available reports whether the tool's binary can be found.
	Available() bool

	// Run executes the tool with args and waits for it to exit. Standard
	// output is discarded; standard error is captured into the returned
	// *ToolError on failure.
	Run(ctx context.Context, args ...string) error
}

// ToolError is returned when an external tool cannot be started or exits
// with a failure status.
type ToolError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s %s: %v: %s", e.Tool, strings.Join(e.Args, " "), e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// tool implements Tool for a single binary.
type tool struct {
	name string
	bin  string
	exec executor
	log  logrus.FieldLogger
}

// New returns a Tool named name that runs bin. An empty bin falls back to
// name, so configuration can leave tool paths unset.
func New(name, bin string, log logrus.FieldLogger) Tool {
	return newTool(name, bin, defaultExec, log)
}

func newTool(name, bin string, exec executor, log logrus.FieldLogger) *tool {
	if bin == "" {
		bin = name
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &tool{name: name, bin: bin, exec: exec, log: log}
}

func (t *tool) Name() string { return t.name }

func (t *tool) Available() bool {
	_, err := t.exec.LookPath(t.bin)
	return err == nil
}

func (t *tool) Run(ctx context.Context, args ...string) error {
	t.log.WithFields(logrus.Fields{
		"tool": t.name,
		"args": strings.Join(args, " "),
	}).Debug("running external tool")

	var stderr bytes.Buffer
	if err := t.exec.Run(ctx, t.bin, args, io.Discard, &stderr); err != nil {
		return &ToolError{
			Tool:   t.name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}

// Detect returns the first available tool in preference order. It returns
// an error naming every candidate if none is installed.
func Detect(candidates ...Tool) (Tool, error) {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.Available() {
			return c, nil
		}
		names = append(names, c.Name())
	}
	return nil, fmt.Errorf("no renderer available: none of %s found on PATH", strings.Join(names, ", "))
}

// Require returns t if it is available, or an error telling the user to
// install it.
func Require(t Tool) (Tool, error) {
	if !t.Available() {
		return nil, fmt.Errorf("%s not found on PATH", t.Name())
	}
	return t, nil
}
