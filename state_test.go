package vtparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateGround, "Ground"},
		{StateEscape, "Escape"},
		{StateEscapeIntermediate, "EscapeIntermediate"},
		{StateCSIEntry, "CSIEntry"},
		{StateCSIParam, "CSIParam"},
		{StateCSIIntermediate, "CSIIntermediate"},
		{StateCSIIgnore, "CSIIgnore"},
		{StateOSCString, "OSCString"},
		{StateDCSEntry, "DCSEntry"},
		{StateDCSParam, "DCSParam"},
		{StateDCSIntermediate, "DCSIntermediate"},
		{StateDCSPassthrough, "DCSPassthrough"},
		{StateDCSIgnore, "DCSIgnore"},
		{StateSOSPMApcString, "SOSPMApcString"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestStateStringUnknown(t *testing.T) {
	assert.Equal(t, "State(99)", State(99).String())
}

func TestStateDefaultValue(t *testing.T) {
	var s State
	assert.Equal(t, StateGround, s, "zero value should be Ground")
}

func TestStateIsValid(t *testing.T) {
	for s := State(0); int(s) < numStates; s++ {
		assert.True(t, s.IsValid(), "state %v should be valid", s)
	}
	assert.False(t, State(99).IsValid())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Print", ActionPrint.String())
	assert.Equal(t, "Ignore", ActionIgnore.String())
	assert.Equal(t, "Action(255)", Action(255).String())
}

func TestActionIsEmit(t *testing.T) {
	emit := []Action{
		ActionPrint, ActionExecute, ActionHook, ActionPut, ActionUnhook,
		ActionOscStart, ActionOscPut, ActionOscEnd, ActionCSIDispatch, ActionEscDispatch,
	}
	for _, a := range emit {
		assert.True(t, a.isEmit(), "%v should be an emit action", a)
	}

	internal := []Action{ActionCollect, ActionParam, ActionClear, ActionIgnore, actionNone}
	for _, a := range internal {
		assert.False(t, a.isEmit(), "%v should not be an emit action", a)
	}
}
