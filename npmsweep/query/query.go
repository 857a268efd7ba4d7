package query

import (
	"context"
	"errors"
)

// ErrUnavailable indicates that the structured query tool is not installed. Callers are expected to fall back to
// their text based heuristics.
var ErrUnavailable = errors.New("structured query tool is unavailable")

// Tool evaluates a filter against the JSON document given on stdin and returns the raw textual output. The args
// are passed as tool options ahead of the filter.
type Tool interface {
	Query(ctx context.Context, filter string, stdin []byte, args ...string) (string, error)
}

// ToolFunc adapts a plain function to a Tool.
type ToolFunc func(ctx context.Context, filter string, stdin []byte, args ...string) (string, error)

func (f ToolFunc) Query(ctx context.Context, filter string, stdin []byte, args ...string) (string, error) {
	return f(ctx, filter, stdin, args...)
}

// Unavailable is a Tool that always reports ErrUnavailable.
var Unavailable Tool = ToolFunc(func(context.Context, string, []byte, ...string) (string, error) {
	return "", ErrUnavailable
})
