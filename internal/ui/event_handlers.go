package ui

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/npmsweep/npmsweep/event/monitor"
	"github.com/anchore/npmsweep/npmsweep/event/parsers"
)

func handleScanFinished(event partybus.Event, reportOutput, summaryOutput io.Writer) error {
	pres, summary, err := parsers.ParseScanFinished(event)
	if err != nil {
		return fmt.Errorf("bad ScanFinished event: %w", err)
	}

	if err := pres.Present(reportOutput); err != nil {
		return fmt.Errorf("unable to show scan report: %w", err)
	}

	if _, err := io.WriteString(summaryOutput, formatSummary(*summary)); err != nil {
		return fmt.Errorf("unable to show scan summary: %w", err)
	}
	return nil
}

func formatSummary(s monitor.Summary) string {
	findings := color.Green.Sprintf("%s findings", humanize.Comma(int64(s.Findings)))
	if s.Findings > 0 {
		findings = color.Red.Sprintf("%s findings", humanize.Comma(int64(s.Findings)))
	}

	msg := fmt.Sprintf("Scan complete: %s directories processed, %s", humanize.Comma(s.DirectoriesProcessed), findings)
	if s.ArtifactsSkipped > 0 {
		msg += color.Yellow.Sprintf(" (%s artifacts could not be read)", humanize.Comma(int64(s.ArtifactsSkipped)))
	}
	msg += "\n"

	if s.ReportLocation != "" {
		msg += fmt.Sprintf("Report saved to %s\n", s.ReportLocation)
	}
	return msg
}
