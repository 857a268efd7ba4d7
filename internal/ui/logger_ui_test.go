package ui

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/acarl005/stripansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"

	npmsweepEvent "github.com/anchore/npmsweep/npmsweep/event"
	"github.com/anchore/npmsweep/npmsweep/event/monitor"
)

type presenterFunc func(io.Writer) error

func (f presenterFunc) Present(w io.Writer) error {
	return f(w)
}

func TestLoggerUI_ScanFinished(t *testing.T) {
	var report, summary bytes.Buffer
	unsubscribed := false

	l := NewLoggerUI(&report, &summary)
	require.NoError(t, l.Setup(func() error {
		unsubscribed = true
		return nil
	}))

	err := l.Handle(partybus.Event{
		Type: npmsweepEvent.ScanFinished,
		Source: monitor.Summary{
			DirectoriesProcessed: 12345,
			Findings:             3,
			ArtifactsSkipped:     1,
			ReportLocation:       "infected_packages_report.json",
		},
		Value: presenterFunc(func(w io.Writer) error {
			_, err := io.WriteString(w, `{"matches": []}`)
			return err
		}),
	})
	require.NoError(t, err)

	assert.True(t, unsubscribed)
	assert.Equal(t, `{"matches": []}`, report.String())
	assert.Equal(t,
		"Scan complete: 12,345 directories processed, 3 findings (1 artifacts could not be read)\nReport saved to infected_packages_report.json\n",
		stripansi.Strip(summary.String()),
	)
}

func TestLoggerUI_ignoresOtherEvents(t *testing.T) {
	var report, summary bytes.Buffer
	l := NewLoggerUI(&report, &summary)
	require.NoError(t, l.Setup(func() error {
		return errors.New("should not unsubscribe")
	}))

	require.NoError(t, l.Handle(partybus.Event{Type: npmsweepEvent.ScanStarted, Value: monitor.Scanning{}}))
	require.NoError(t, l.Handle(partybus.Event{Type: "something-else"}))

	assert.Empty(t, report.String())
	assert.Empty(t, summary.String())
}

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name     string
		summary  monitor.Summary
		expected string
	}{
		{
			name:     "clean to stdout",
			summary:  monitor.Summary{DirectoriesProcessed: 7},
			expected: "Scan complete: 7 directories processed, 0 findings\n",
		},
		{
			name:     "findings to file",
			summary:  monitor.Summary{DirectoriesProcessed: 1500, Findings: 2000, ReportLocation: "/tmp/r.json"},
			expected: "Scan complete: 1,500 directories processed, 2,000 findings\nReport saved to /tmp/r.json\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, stripansi.Strip(formatSummary(test.summary)))
		})
	}
}
