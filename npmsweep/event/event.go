/*
Package event provides event types for all events that the npmsweep library published onto the event bus. By
convention, for each event defined here there should be a corresponding event parser defined in the parsers/ child
package.
*/
package event

import "github.com/wagoodman/go-partybus"

const (
	// ScanStarted is a partybus event that occurs when the match engine begins walking the scan phases.
	ScanStarted partybus.EventType = "npmsweep-scan-started"

	// ScanFinished is a partybus event that occurs when the report is ready to be presented.
	ScanFinished partybus.EventType = "npmsweep-scan-finished"
)
