package vtparse

import "fmt"

// State is one of the 14 states of Paul Williams' DEC ANSI parser state
// diagram. The zero value is Ground, which is also the state installed by
// NewParser and the state a well-formed, quiescent stream returns to.
type State uint8

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateOSCString
	StateDCSEntry
	StateDCSParam
	StateDCSIntermediate
	StateDCSPassthrough
	StateDCSIgnore
	StateSOSPMApcString

	numStates = int(StateSOSPMApcString) + 1
)

var stateNames = [numStates]string{
	"Ground",
	"Escape",
	"EscapeIntermediate",
	"CSIEntry",
	"CSIParam",
	"CSIIntermediate",
	"CSIIgnore",
	"OSCString",
	"DCSEntry",
	"DCSParam",
	"DCSIntermediate",
	"DCSPassthrough",
	"DCSIgnore",
	"SOSPMApcString",
}

// String returns the state's name, matching the labels on Williams' diagram.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// IsValid reports whether s is one of the 14 defined states.
func (s State) IsValid() bool {
	return int(s) < numStates
}

// Action identifies the effect of a single transition-table entry: either an
// event delivered to the host Callback, or bookkeeping the parser performs
// on its own accumulators. ActionError is never stored in the table itself;
// it is produced by the dispatcher when a table entry turns out to carry
// neither an action nor a next state.
type Action uint8

const (
	actionNone Action = iota

	// Emit actions: delivered to the host Callback.
	ActionPrint
	ActionExecute
	ActionHook
	ActionPut
	ActionUnhook
	ActionOscStart
	ActionOscPut
	ActionOscEnd
	ActionCSIDispatch
	ActionEscDispatch
	ActionError

	// Internal actions: applied to the parser's own accumulators, never
	// seen by the callback.
	ActionCollect
	ActionParam
	ActionClear
	ActionIgnore
)

var actionNames = [...]string{
	actionNone:        "None",
	ActionPrint:       "Print",
	ActionExecute:     "Execute",
	ActionHook:        "Hook",
	ActionPut:         "Put",
	ActionUnhook:      "Unhook",
	ActionOscStart:    "OscStart",
	ActionOscPut:      "OscPut",
	ActionOscEnd:      "OscEnd",
	ActionCSIDispatch: "CsiDispatch",
	ActionEscDispatch: "EscDispatch",
	ActionError:       "Error",
	ActionCollect:     "Collect",
	ActionParam:       "Param",
	ActionClear:       "Clear",
	ActionIgnore:      "Ignore",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// isEmit reports whether a is delivered to the host callback rather than
// handled internally by the dispatcher.
func (a Action) isEmit() bool {
	switch a {
	case ActionPrint, ActionExecute, ActionHook, ActionPut, ActionUnhook,
		ActionOscStart, ActionOscPut, ActionOscEnd, ActionCSIDispatch, ActionEscDispatch:
		return true
	default:
		return false
	}
}
