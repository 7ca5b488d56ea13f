package core

import "pkt.systems/pslog"

// CoordinatorDeps captures the collaborators of a clone dialog coordinator.
type CoordinatorDeps struct {
	Connections  ConnectionManager
	CloneService CloneService
	Primary      Tab
	Secondary    Tab
	URL          Tab
	Cloner       Cloner
	EventSink    EventSink
	Logger       pslog.Logger
}
