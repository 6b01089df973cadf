package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner runs commands with os/exec.
type CommandRunner struct{}

// NewCommandRunner constructs a CommandRunner.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

// Run executes name with args and waits for it. A non-zero exit is reported
// as ErrCommandFailed together with the command's output.
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%w: %s %s: %w: %s",
			ErrCommandFailed, name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}

	return out, nil
}
