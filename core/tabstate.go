package core

// tabState is the lifecycle position of one tab within a dialog session.
// Initializing and Activating mark in-flight calls so the same tab is never
// initialized or activated twice concurrently.
type tabState int

const (
	tabUninitialized tabState = iota
	tabInitializing
	tabInitialized
	tabActivating
	tabActivated
)

func (s tabState) String() string {
	switch s {
	case tabUninitialized:
		return "uninitialized"
	case tabInitializing:
		return "initializing"
	case tabInitialized:
		return "initialized"
	case tabActivating:
		return "activating"
	case tabActivated:
		return "activated"
	default:
		return "unknown"
	}
}

type tabEvent int

const (
	tabEventInitialize tabEvent = iota
	tabEventInitialized
	tabEventSelect
	tabEventActivated
	tabEventFailed
)

type tabAction int

const (
	tabActionNone tabAction = iota
	tabActionInitialize
	tabActionActivate
)

type tabTransitionKey struct {
	state tabState
	event tabEvent
}

type tabTransition struct {
	next   tabState
	action tabAction
}

var tabTransitions = map[tabTransitionKey]tabTransition{
	{tabUninitialized, tabEventInitialize}: {tabInitializing, tabActionInitialize},
	{tabInitializing, tabEventInitialized}: {tabInitialized, tabActionNone},
	{tabInitializing, tabEventFailed}:      {tabUninitialized, tabActionNone},
	{tabInitialized, tabEventSelect}:       {tabActivating, tabActionActivate},
	{tabActivating, tabEventActivated}:     {tabActivated, tabActionNone},
	{tabActivating, tabEventFailed}:        {tabInitialized, tabActionNone},
}

// transition returns the next state and the side effect the caller must run.
// Pairs missing from the table leave the state unchanged with no action.
func transition(state tabState, event tabEvent) (tabState, tabAction) {
	if t, ok := tabTransitions[tabTransitionKey{state: state, event: event}]; ok {
		return t.next, t.action
	}
	return state, tabActionNone
}
