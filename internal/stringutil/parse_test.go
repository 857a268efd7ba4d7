package stringutil

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCaptureGroups(t *testing.T) {
	pattern := regexp.MustCompile(`(?P<name>[a-z-]+)@(?P<version>[0-9.]+)`)

	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "match",
			input:    "left-pad@1.3.0",
			expected: map[string]string{"name": "left-pad", "version": "1.3.0"},
		},
		{
			name:     "no match",
			input:    "nothing here",
			expected: map[string]string{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, MatchCaptureGroups(pattern, test.input))
		})
	}
}

func TestTprintf(t *testing.T) {
	assert.Equal(t, "npmsweep scans", Tprintf("{{.appName}} scans", map[string]interface{}{"appName": "npmsweep"}))
}
