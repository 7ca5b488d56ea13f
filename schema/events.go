package schema

// CoordinatorEventType identifies a coordinator state change.
type CoordinatorEventType string

const (
	// EventPathChanged is emitted when the destination path changes.
	EventPathChanged CoordinatorEventType = "path"
	// EventPathErrorChanged is emitted when the path validation message changes.
	EventPathErrorChanged CoordinatorEventType = "path_error"
	// EventCanCloneChanged is emitted when clone command enablement flips.
	EventCanCloneChanged CoordinatorEventType = "can_clone"
	// EventTabSelected is emitted when the selected tab index changes.
	EventTabSelected CoordinatorEventType = "tab_selected"
	// EventTabActivated is emitted once per tab after a successful activation.
	EventTabActivated CoordinatorEventType = "tab_activated"
)

// CoordinatorEvent describes a coordinator state change.
type CoordinatorEvent struct {
	SessionID SessionID
	Type      CoordinatorEventType
	Tab       TabKind
	TabIndex  int
	Path      string
	PathError string
	CanClone  bool
}
