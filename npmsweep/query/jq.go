package query

import (
	"context"
	"fmt"
	"time"

	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/internal/process"
)

type Config struct {
	// Path is the jq executable, either a name looked up on the PATH or an explicit path.
	Path    string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Path:    "jq",
		Timeout: 10 * time.Second,
	}
}

// JQ runs jq as a subprocess, always in raw output mode (-r).
type JQ struct {
	path      string
	timeout   time.Duration
	lookupErr error
}

var _ Tool = (*JQ)(nil)

func NewJQ(cfg Config) *JQ {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	path, err := process.Lookup(cfg.Path)
	if err != nil {
		log.Warnf("jq is not available, falling back to text search for lockfiles and manifests: %+v", err)
	} else {
		log.Debugf("using jq from %q", path)
	}
	return &JQ{
		path:      path,
		timeout:   cfg.Timeout,
		lookupErr: err,
	}
}

func (j *JQ) Available() bool {
	return j.lookupErr == nil
}

func (j *JQ) Query(ctx context.Context, filter string, stdin []byte, args ...string) (string, error) {
	if j.lookupErr != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, j.lookupErr)
	}
	if stdin == nil {
		stdin = []byte{}
	}

	argv := make([]string, 0, len(args)+2)
	argv = append(argv, "-r")
	argv = append(argv, args...)
	argv = append(argv, filter)

	return process.Run(ctx, j.timeout, stdin, j.path, argv...)
}
