package vtparse

// tableEntry is the packed pair the transition table maps a (state, byte)
// pair to: an optional action and an optional next state, exactly as
// described for the transition table component. hasNext distinguishes "stay
// in place" (next state absent) from "transition to Ground" (next state
// present and equal to Ground), since both are representable and mean
// different things to the state-change engine.
type tableEntry struct {
	action  Action
	next    State
	hasNext bool
}

var (
	transitions  [numStates][256]tableEntry
	entryActions [numStates]Action
	exitActions  [numStates]Action
)

func init() {
	buildTransitions()
	buildEntryExitActions()
}

// fillRange fills [lo,hi] of state's row with an in-place action (no state
// change). It does not touch entries outside the given range.
func fillRange(state State, lo, hi byte, action Action) {
	row := &transitions[state]
	for b := int(lo); b <= int(hi); b++ {
		row[b] = tableEntry{action: action}
	}
}

// transRange fills [lo,hi] of state's row with a transition to next,
// optionally carrying an action on the edge itself.
func transRange(state State, lo, hi byte, action Action, next State) {
	row := &transitions[state]
	for b := int(lo); b <= int(hi); b++ {
		row[b] = tableEntry{action: action, next: next, hasNext: true}
	}
}

// execC0 fills the common C0 ranges (everything except CAN, SUB, and ESC,
// which the anywhere rules claim) with the given in-place action. Most states
// execute C0 controls in place; DCS states ignore them until passthrough.
func execC0(state State, action Action) {
	fillRange(state, 0x00, 0x17, action)
	fillRange(state, 0x19, 0x19, action)
	fillRange(state, 0x1C, 0x1F, action)
}

func buildTransitions() {
	// Ground: printable ASCII is normally caught by the print batcher before
	// the table is ever consulted (see feedByte in parser.go); the
	// entries below exist so that FeedCodepoints and direct table lookups
	// agree with that fast path byte-for-byte.
	execC0(StateGround, ActionExecute)
	fillRange(StateGround, 0x20, 0x7E, ActionPrint)
	fillRange(StateGround, 0x7F, 0x7F, ActionIgnore)
	// 0x80-0x9F are claimed by the anywhere C1 overlay below and never reach
	// the UTF-8 assembler at a fresh lead position (see feedByte). Code
	// points 0xA0-0xFF (e.g. U+00E9, assembled from C3 A9) go to the print
	// batcher directly from both feed paths, so this entry only keeps a
	// direct table lookup in agreement with them; a raw 0xA0-0xBF byte that
	// arrives with no sequence in progress is dropped by the assembler
	// itself and never reaches the table at all.
	fillRange(StateGround, 0xA0, 0xFF, ActionPrint)

	execC0(StateEscape, ActionExecute)
	fillRange(StateEscape, 0x7F, 0x7F, ActionIgnore)
	transRange(StateEscape, 0x20, 0x2F, ActionCollect, StateEscapeIntermediate)
	transRange(StateEscape, 0x30, 0x4F, ActionEscDispatch, StateGround)
	transRange(StateEscape, 0x50, 0x50, actionNone, StateDCSEntry)
	transRange(StateEscape, 0x51, 0x57, ActionEscDispatch, StateGround)
	transRange(StateEscape, 0x58, 0x58, actionNone, StateSOSPMApcString)
	transRange(StateEscape, 0x59, 0x5A, ActionEscDispatch, StateGround)
	transRange(StateEscape, 0x5B, 0x5B, actionNone, StateCSIEntry)
	transRange(StateEscape, 0x5C, 0x5C, ActionEscDispatch, StateGround)
	transRange(StateEscape, 0x5D, 0x5D, actionNone, StateOSCString)
	transRange(StateEscape, 0x5E, 0x5E, actionNone, StateSOSPMApcString)
	transRange(StateEscape, 0x5F, 0x5F, actionNone, StateSOSPMApcString)
	transRange(StateEscape, 0x60, 0x7E, ActionEscDispatch, StateGround)

	execC0(StateEscapeIntermediate, ActionExecute)
	fillRange(StateEscapeIntermediate, 0x20, 0x2F, ActionCollect)
	fillRange(StateEscapeIntermediate, 0x7F, 0x7F, ActionIgnore)
	transRange(StateEscapeIntermediate, 0x30, 0x7E, ActionEscDispatch, StateGround)

	execC0(StateCSIEntry, ActionExecute)
	fillRange(StateCSIEntry, 0x7F, 0x7F, ActionIgnore)
	transRange(StateCSIEntry, 0x20, 0x2F, ActionCollect, StateCSIIntermediate)
	transRange(StateCSIEntry, 0x30, 0x39, ActionParam, StateCSIParam)
	transRange(StateCSIEntry, 0x3A, 0x3B, ActionParam, StateCSIParam)
	transRange(StateCSIEntry, 0x3C, 0x3F, ActionCollect, StateCSIParam)
	transRange(StateCSIEntry, 0x40, 0x7E, ActionCSIDispatch, StateGround)

	execC0(StateCSIParam, ActionExecute)
	fillRange(StateCSIParam, 0x30, 0x39, ActionParam)
	fillRange(StateCSIParam, 0x3A, 0x3B, ActionParam)
	fillRange(StateCSIParam, 0x7F, 0x7F, ActionIgnore)
	transRange(StateCSIParam, 0x20, 0x2F, ActionCollect, StateCSIIntermediate)
	transRange(StateCSIParam, 0x3C, 0x3F, actionNone, StateCSIIgnore)
	transRange(StateCSIParam, 0x40, 0x7E, ActionCSIDispatch, StateGround)

	execC0(StateCSIIntermediate, ActionExecute)
	fillRange(StateCSIIntermediate, 0x20, 0x2F, ActionCollect)
	fillRange(StateCSIIntermediate, 0x7F, 0x7F, ActionIgnore)
	transRange(StateCSIIntermediate, 0x30, 0x3F, actionNone, StateCSIIgnore)
	transRange(StateCSIIntermediate, 0x40, 0x7E, ActionCSIDispatch, StateGround)

	execC0(StateCSIIgnore, ActionExecute)
	fillRange(StateCSIIgnore, 0x20, 0x3F, ActionIgnore)
	fillRange(StateCSIIgnore, 0x7F, 0x7F, ActionIgnore)
	transRange(StateCSIIgnore, 0x40, 0x7E, actionNone, StateGround)

	// DCS states ignore C0 controls until passthrough is hooked; nothing is
	// executed on their behalf before the handler is known.
	fillRange(StateDCSEntry, 0x00, 0x17, ActionIgnore)
	fillRange(StateDCSEntry, 0x19, 0x19, ActionIgnore)
	fillRange(StateDCSEntry, 0x1C, 0x1F, ActionIgnore)
	fillRange(StateDCSEntry, 0x7F, 0x7F, ActionIgnore)
	transRange(StateDCSEntry, 0x20, 0x2F, ActionCollect, StateDCSIntermediate)
	transRange(StateDCSEntry, 0x30, 0x39, ActionParam, StateDCSParam)
	transRange(StateDCSEntry, 0x3A, 0x3B, ActionParam, StateDCSParam)
	transRange(StateDCSEntry, 0x3C, 0x3F, ActionCollect, StateDCSParam)
	transRange(StateDCSEntry, 0x40, 0x7E, ActionHook, StateDCSPassthrough)

	fillRange(StateDCSParam, 0x00, 0x17, ActionIgnore)
	fillRange(StateDCSParam, 0x19, 0x19, ActionIgnore)
	fillRange(StateDCSParam, 0x1C, 0x1F, ActionIgnore)
	fillRange(StateDCSParam, 0x30, 0x39, ActionParam)
	fillRange(StateDCSParam, 0x3A, 0x3B, ActionParam)
	fillRange(StateDCSParam, 0x7F, 0x7F, ActionIgnore)
	transRange(StateDCSParam, 0x20, 0x2F, ActionCollect, StateDCSIntermediate)
	transRange(StateDCSParam, 0x3C, 0x3F, actionNone, StateDCSIgnore)
	transRange(StateDCSParam, 0x40, 0x7E, ActionHook, StateDCSPassthrough)

	fillRange(StateDCSIntermediate, 0x00, 0x17, ActionIgnore)
	fillRange(StateDCSIntermediate, 0x19, 0x19, ActionIgnore)
	fillRange(StateDCSIntermediate, 0x1C, 0x1F, ActionIgnore)
	fillRange(StateDCSIntermediate, 0x20, 0x2F, ActionCollect)
	fillRange(StateDCSIntermediate, 0x7F, 0x7F, ActionIgnore)
	transRange(StateDCSIntermediate, 0x30, 0x3F, actionNone, StateDCSIgnore)
	transRange(StateDCSIntermediate, 0x40, 0x7E, ActionHook, StateDCSPassthrough)

	// DCS passthrough hands every byte, including C0 controls and DEL, to
	// the host via PUT; only the anywhere terminators end it.
	fillRange(StateDCSPassthrough, 0x00, 0x17, ActionPut)
	fillRange(StateDCSPassthrough, 0x19, 0x19, ActionPut)
	fillRange(StateDCSPassthrough, 0x1C, 0x7F, ActionPut)
	fillRange(StateDCSPassthrough, 0x20, 0x7E, ActionPut)
	// 0x80-0x9F are claimed by the anywhere C1 overlay below; 0xA0-0xFF are
	// plain data bytes (e.g. sixel payloads, 8-bit DCS replies) and pass
	// through untouched.
	fillRange(StateDCSPassthrough, 0xA0, 0xFF, ActionPut)

	fillRange(StateDCSIgnore, 0x00, 0x17, ActionIgnore)
	fillRange(StateDCSIgnore, 0x19, 0x19, ActionIgnore)
	fillRange(StateDCSIgnore, 0x1C, 0x7F, ActionIgnore)
	fillRange(StateDCSIgnore, 0x20, 0x7E, ActionIgnore)

	fillRange(StateOSCString, 0x00, 0x06, ActionIgnore)
	fillRange(StateOSCString, 0x08, 0x17, ActionIgnore)
	fillRange(StateOSCString, 0x19, 0x19, ActionIgnore)
	fillRange(StateOSCString, 0x1C, 0x1F, ActionIgnore)
	fillRange(StateOSCString, 0x20, 0x7F, ActionOscPut)
	fillRange(StateOSCString, 0xA0, 0xFF, ActionOscPut)
	transRange(StateOSCString, 0x07, 0x07, actionNone, StateGround)

	fillRange(StateSOSPMApcString, 0x00, 0x7F, ActionIgnore)
	fillRange(StateSOSPMApcString, 0xA0, 0xFF, ActionIgnore)

	// Anywhere transitions: apply uniformly across every state, overwriting
	// whatever the state-specific ranges above set for these bytes. Escape,
	// the two-byte C1 introducers, and CAN/SUB behave identically no matter
	// what the parser was doing when they arrived.
	for s := State(0); int(s) < numStates; s++ {
		transRange(s, 0x18, 0x18, ActionExecute, StateGround)
		transRange(s, 0x1A, 0x1A, ActionExecute, StateGround)
		transRange(s, 0x1B, 0x1B, actionNone, StateEscape)
		transRange(s, 0x80, 0x8F, ActionExecute, StateGround)
		transRange(s, 0x90, 0x90, actionNone, StateDCSEntry)
		transRange(s, 0x91, 0x97, ActionExecute, StateGround)
		transRange(s, 0x98, 0x98, actionNone, StateSOSPMApcString)
		transRange(s, 0x99, 0x9A, ActionExecute, StateGround)
		transRange(s, 0x9B, 0x9B, actionNone, StateCSIEntry)
		transRange(s, 0x9C, 0x9C, actionNone, StateGround)
		transRange(s, 0x9D, 0x9D, actionNone, StateOSCString)
		transRange(s, 0x9E, 0x9E, actionNone, StateSOSPMApcString)
		transRange(s, 0x9F, 0x9F, actionNone, StateSOSPMApcString)
	}

	// Every byte in every state now has an explicit entry. Anything still at
	// its zero value was never assigned above, meaning the diagram has
	// nothing to say about it (e.g. 0xA0-0xFF in Escape); treat that
	// silently as Ignore rather than leaving it indistinguishable from a
	// genuine gap in the table.
	for s := State(0); int(s) < numStates; s++ {
		row := &transitions[s]
		for b := 0; b < 256; b++ {
			if row[b].action == actionNone && !row[b].hasNext {
				row[b].action = ActionIgnore
			}
		}
	}
}

func buildEntryExitActions() {
	entryActions[StateEscape] = ActionClear
	entryActions[StateCSIEntry] = ActionClear
	entryActions[StateDCSEntry] = ActionClear
	entryActions[StateOSCString] = ActionOscStart
	exitActions[StateOSCString] = ActionOscEnd
	exitActions[StateDCSPassthrough] = ActionUnhook
}
