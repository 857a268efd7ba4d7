package monitor

import "github.com/wagoodman/go-progress"

// Scanning is the payload of the ScanStarted event. Each value can be polled while the scan is running.
type Scanning struct {
	DirectoriesProcessed progress.Monitorable
	ArtifactsProcessed   progress.Monitorable
	ArtifactsSkipped     progress.Monitorable
	FindingsDiscovered   progress.Monitorable
}

// Summary is the final tally of a scan, shown to the user once the report has been presented.
type Summary struct {
	DirectoriesProcessed int64
	ArtifactsSkipped     int
	Findings             int
	ReportLocation       string
}
