// =============================================================================
// Contentful CSV Importer - External Importer
// =============================================================================
//
// This module runs the Contentful CLI against the generated import file:
//
//   contentful space import \
//     --environment-id <env> \
//     --space-id <space> \
//     --content-file <file> \
//     [--management-token <token>]
//
// The CLI inherits the terminal, so its progress output and any login
// prompts reach the user directly. A non-zero exit fails the run.
//
// PROGRAM:
//   The program comes from the "importer_command" setting and may carry
//   leading arguments, e.g. "npx contentful".
//
// =============================================================================

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultProgram is run when no importer command is configured.
const DefaultProgram = "contentful"

// =============================================================================
// ERRORS
// =============================================================================

// ExternalCommandError reports an importer that could not start or exited
// with a non-zero status.
type ExternalCommandError struct {
	// Command is the command line that was run, without the token.
	Command string

	// ExitCode is the exit status, or -1 when the process never ran.
	ExitCode int

	Err error
}

// Error implements the error interface.
func (e *ExternalCommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("import command %q exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("import command %q failed: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExternalCommandError) Unwrap() error {
	return e.Err
}

// =============================================================================
// COMMAND
// =============================================================================

// Command describes one importer invocation.
type Command struct {
	// Program is the executable to run.
	Program string

	// Prefix are arguments placed before "space import".
	Prefix []string

	Space           string
	Environment     string
	ContentFile     string
	ManagementToken string

	// Stdin, Stdout and Stderr default to the process's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the child environment. Nil inherits the current one.
	Env []string
}

// NewCommand builds a Command from an "importer_command" setting.
func NewCommand(importerCommand, space, environment, contentFile, token string) *Command {
	parts := strings.Fields(importerCommand)
	if len(parts) == 0 {
		parts = []string{DefaultProgram}
	}
	return &Command{
		Program:         parts[0],
		Prefix:          parts[1:],
		Space:           space,
		Environment:     environment,
		ContentFile:     contentFile,
		ManagementToken: token,
	}
}

// Args returns the arguments passed to Program.
//
// A token that already starts with "-" is taken as ready-made flags and
// appended word by word, so "mtoken:--management-token abc" also works.
func (c *Command) Args() []string {
	args := append([]string{}, c.Prefix...)
	args = append(args,
		"space", "import",
		"--environment-id", c.Environment,
		"--space-id", c.Space,
		"--content-file", c.ContentFile,
	)

	token := strings.TrimSpace(c.ManagementToken)
	switch {
	case token == "":
	case strings.HasPrefix(token, "-"):
		args = append(args, strings.Fields(token)...)
	default:
		args = append(args, "--management-token", token)
	}
	return args
}

// String returns the command line with the management token masked.
func (c *Command) String() string {
	args := c.Args()
	for i := range args {
		if i > 0 && args[i-1] == "--management-token" {
			args[i] = "***"
		}
	}
	return strings.Join(append([]string{c.Program}, args...), " ")
}

// Run executes the importer and waits for it to finish.
//
// RETURNS:
//   - nil when the importer exits with status 0.
//   - An *ExternalCommandError otherwise.
func (c *Command) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.Program, c.Args()...)
	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)
	cmd.Env = c.Env

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &ExternalCommandError{Command: c.String(), ExitCode: exitCode, Err: err}
	}
	return nil
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
