package ui

import (
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/npmsweep/internal/log"
	npmsweepEvent "github.com/anchore/npmsweep/npmsweep/event"
	"github.com/anchore/npmsweep/npmsweep/event/parsers"
)

type loggerUI struct {
	unsubscribe   func() error
	reportOutput  io.Writer
	summaryOutput io.Writer
}

// NewLoggerUI writes all events to the common application logger, writes the final report to the given report writer
// and the scan summary to the summary writer.
func NewLoggerUI(reportWriter, summaryWriter io.Writer) UI {
	return &loggerUI{
		reportOutput:  reportWriter,
		summaryOutput: summaryWriter,
	}
}

func (l *loggerUI) Setup(unsubscribe func() error) error {
	l.unsubscribe = unsubscribe
	return nil
}

func (l loggerUI) Handle(event partybus.Event) error {
	switch event.Type {
	case npmsweepEvent.ScanStarted:
		if _, err := parsers.ParseScanStarted(event); err != nil {
			log.Warnf("unable to read scan started event: %+v", err)
		}
		log.Debug("scan started")
		return nil
	case npmsweepEvent.ScanFinished:
		if err := handleScanFinished(event, l.reportOutput, l.summaryOutput); err != nil {
			log.Warnf("unable to show scan finished event: %+v", err)
		}
	// ignore all events except for the final event
	default:
		return nil
	}

	// this is the last expected event, stop listening to events
	return l.unsubscribe()
}

func (l loggerUI) Teardown(_ bool) error {
	return nil
}
