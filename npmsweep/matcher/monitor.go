package matcher

import (
	"sync/atomic"

	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/anchore/npmsweep/internal/bus"
	"github.com/anchore/npmsweep/npmsweep/event"
	"github.com/anchore/npmsweep/npmsweep/event/monitor"
)

// counter is a progress.Monitorable that is safe to update from several workers.
type counter struct {
	n    int64
	done int32
}

var _ progress.Monitorable = (*counter)(nil)

func (c *counter) add(n int64) {
	atomic.AddInt64(&c.n, n)
}

func (c *counter) increment() {
	c.add(1)
}

func (c *counter) setCompleted() {
	atomic.StoreInt32(&c.done, 1)
}

func (c *counter) Current() int64 {
	return atomic.LoadInt64(&c.n)
}

func (c *counter) Size() int64 {
	if atomic.LoadInt32(&c.done) == 1 {
		return c.Current()
	}
	return -1
}

func (c *counter) Error() error {
	if atomic.LoadInt32(&c.done) == 1 {
		return progress.ErrCompleted
	}
	return nil
}

type tracker struct {
	directories *counter
	artifacts   *counter
	skipped     *counter
	findings    *counter
}

func newTracker() *tracker {
	return &tracker{
		directories: &counter{},
		artifacts:   &counter{},
		skipped:     &counter{},
		findings:    &counter{},
	}
}

func (t *tracker) setCompleted() {
	t.directories.setCompleted()
	t.artifacts.setCompleted()
	t.skipped.setCompleted()
	t.findings.setCompleted()
}

func trackScan() *tracker {
	t := newTracker()

	bus.Publish(partybus.Event{
		Type: event.ScanStarted,
		Value: monitor.Scanning{
			DirectoriesProcessed: progress.Monitorable(t.directories),
			ArtifactsProcessed:   progress.Monitorable(t.artifacts),
			ArtifactsSkipped:     progress.Monitorable(t.skipped),
			FindingsDiscovered:   progress.Monitorable(t.findings),
		},
	})
	return t
}
