/*
Package bus holds the event bus publisher set by the application. The match engine publishes its progress monitor
and the CLI publishes the finished report through it; nothing in the library subscribes.
*/
package bus

import "github.com/wagoodman/go-partybus"

var publisher partybus.Publisher

// SetPublisher sets the publisher. Scanning works the same when none is set.
func SetPublisher(p partybus.Publisher) {
	publisher = p
}

// Publish sends the event to the publisher, if any.
func Publish(event partybus.Event) {
	if publisher != nil {
		publisher.Publish(event)
	}
}
