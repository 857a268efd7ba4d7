package parsers

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/npmsweep/npmsweep/event"
	"github.com/anchore/npmsweep/npmsweep/event/monitor"
	"github.com/anchore/npmsweep/npmsweep/presenter"
)

type ErrBadPayload struct {
	Type  partybus.EventType
	Field string
	Value interface{}
}

func (e *ErrBadPayload) Error() string {
	return fmt.Sprintf("event='%s' has bad event payload field='%v': '%+v'", string(e.Type), e.Field, e.Value)
}

func newPayloadErr(t partybus.EventType, field string, value interface{}) error {
	return &ErrBadPayload{
		Type:  t,
		Field: field,
		Value: value,
	}
}

func checkEventType(actual, expected partybus.EventType) error {
	if actual != expected {
		return newPayloadErr(expected, "Type", actual)
	}
	return nil
}

func ParseScanStarted(e partybus.Event) (*monitor.Scanning, error) {
	if err := checkEventType(e.Type, event.ScanStarted); err != nil {
		return nil, err
	}

	mon, ok := e.Value.(monitor.Scanning)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &mon, nil
}

func ParseScanFinished(e partybus.Event) (presenter.Presenter, *monitor.Summary, error) {
	if err := checkEventType(e.Type, event.ScanFinished); err != nil {
		return nil, nil, err
	}

	pres, ok := e.Value.(presenter.Presenter)
	if !ok {
		return nil, nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	summary, ok := e.Source.(monitor.Summary)
	if !ok {
		return nil, nil, newPayloadErr(e.Type, "Source", e.Source)
	}

	return pres, &summary, nil
}
