package ui

import (
	"io"
	"os"
)

// Select picks the UI for the session. The report always goes to the report writer; the summary goes to stderr
// unless the user asked for quiet output.
func Select(quiet bool, reportWriter io.Writer) UI {
	var summaryWriter io.Writer = os.Stderr
	if quiet {
		summaryWriter = io.Discard
	}
	return NewLoggerUI(reportWriter, summaryWriter)
}
