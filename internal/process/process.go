package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNotFound is returned when the executable cannot be found on the PATH.
var ErrNotFound = errors.New("executable not found")

// Lookup resolves the executable the same way the shell would.
func Lookup(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrNotFound, name, err)
	}
	return path, nil
}

// Run executes the command to completion and returns its stdout. A non-zero exit is an error that carries the
// (trimmed) stderr of the process. A positive timeout bounds the invocation.
func Run(ctx context.Context, timeout time.Duration, stdin []byte, path string, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%s did not complete: %w", path, ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s", path, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", path, err)
	}

	return stdout.String(), nil
}
