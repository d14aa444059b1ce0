package invoice2pdf

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/alnah/go-invoice2pdf/internal/process"
)

// CommandRunner runs an external command to completion and returns what it
// wrote to stdout and stderr.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs commands with os/exec. Each command gets its own process
// group, killed as a whole when ctx is done.
type ExecRunner struct{}

// Compile-time interface check.
var _ CommandRunner = ExecRunner{}

// Run executes name with args and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary is operator-configured
	process.Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
