package core

import "pkt.systems/repoclone/schema"

// EventSink receives coordinator state changes.
type EventSink interface {
	OnCoordinatorEvent(event schema.CoordinatorEvent)
}
