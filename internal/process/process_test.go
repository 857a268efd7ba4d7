package process

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a posix shell")
	}
	sh, err := Lookup("sh")
	if err != nil {
		t.Skip("requires a posix shell")
	}
	return sh
}

func TestLookup_missing(t *testing.T) {
	_, err := Lookup("npmsweep-no-such-binary")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRun(t *testing.T) {
	sh := requireShell(t)

	tests := []struct {
		name     string
		stdin    []byte
		args     []string
		timeout  time.Duration
		expected string
		wantErr  require.ErrorAssertionFunc
	}{
		{
			name:     "stdout is captured",
			args:     []string{"-c", "echo hello"},
			expected: "hello\n",
			wantErr:  require.NoError,
		},
		{
			name:     "stdin is passed",
			stdin:    []byte("from stdin"),
			args:     []string{"-c", "cat"},
			expected: "from stdin",
			wantErr:  require.NoError,
		},
		{
			name: "non-zero exit carries stderr",
			args: []string{"-c", "echo broken >&2; exit 3"},
			wantErr: func(t require.TestingT, err error, _ ...interface{}) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "broken")
			},
		},
		{
			name:    "timeout",
			args:    []string{"-c", "exec sleep 5"},
			timeout: 50 * time.Millisecond,
			wantErr: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, context.DeadlineExceeded)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Run(context.Background(), test.timeout, test.stdin, sh, test.args...)
			test.wantErr(t, err)
			if err == nil {
				assert.Equal(t, test.expected, actual)
			}
		})
	}
}
