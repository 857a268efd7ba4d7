package location

import (
	"context"
	"time"

	"github.com/anchore/npmsweep/internal/process"
)

// Runner runs an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// CommandRunner runs commands as subprocesses, bounding each invocation by Timeout.
type CommandRunner struct {
	Timeout time.Duration
}

func (r CommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	path, err := process.Lookup(name)
	if err != nil {
		return "", err
	}
	return process.Run(ctx, r.Timeout, nil, path, args...)
}
