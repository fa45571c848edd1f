package vtparse

// MaxIntermediates is the intermediate byte accumulator's capacity. The
// specification requires at least 2; a sequence that collects more than
// this sets the sticky ignore flag rather than growing the buffer or
// panicking.
const MaxIntermediates = 2

// PrintBufferSize is the print batcher's capacity. Contiguous printable
// bytes in Ground are coalesced into a single Print call up to this many
// code points, then flushed and restarted; the specification requires at
// least 64.
const PrintBufferSize = 64

// Parser is a DEC ANSI-compatible control sequence parser: the 14-state
// machine described by Paul Williams' state diagram, driving a host Callback
// from a byte stream. The zero value is not ready to use; call NewParser.
type Parser struct {
	state State

	intermediates []byte
	params        *Params
	curParam      uint32
	hasCurParam   bool
	inSubparam    bool
	ignoring      bool

	printBuf []rune
	utf8     utf8Assembler

	// escPending is set when an ESC arrives while collecting an OSC string,
	// a DCS passthrough, or a SOS/PM/APC string. The table's generic
	// "anywhere" rule would send ESC straight to Escape, but these three
	// states terminate on the two-byte String Terminator (ESC \) and the
	// table has no way to look one byte ahead on its own, so the lookahead
	// is handled here instead.
	escPending bool
}

// NewParser returns a Parser ready to consume input, starting in Ground.
func NewParser() *Parser {
	return &Parser{
		state:         StateGround,
		params:        NewParams(),
		intermediates: make([]byte, 0, MaxIntermediates),
		printBuf:      make([]rune, 0, PrintBufferSize),
	}
}

// State returns the parser's current state. Mostly useful for tests and
// diagnostics; well-behaved hosts drive everything through Callback.
func (p *Parser) State() State {
	return p.state
}

// FeedBytes advances the parser over data, invoking cb's methods as control
// functions and printable text are recognized. Splitting one logical byte
// stream across multiple FeedBytes calls produces exactly the same
// callbacks as feeding it in one call, including a print batch that happens
// to straddle the boundary: FeedBytes never flushes the print buffer on its
// own just because the call is ending. Call Flush to force out a pending
// batch, typically once the underlying stream is known to be at EOF.
func (p *Parser) FeedBytes(cb Callback, data []byte) {
	for _, b := range data {
		p.feedByte(cb, b)
	}
}

// FeedCodepoints advances the parser over already-decoded text. It exists
// for hosts that received code points from elsewhere (e.g. a UTF-8 library
// of their own) and don't want the parser's byte-oriented front end
// involved. A code point under 0x80 is handled exactly like the same byte
// given to FeedBytes. In Ground, a code point from 0xA0 up joins the print
// batch, the same as a multi-byte UTF-8 character FeedBytes has assembled;
// any other code point under 0x100 is run through the transition table as a
// single byte. A code point above 0xFF arriving outside Ground is re-encoded
// as UTF-8 and its bytes are handed to the current string's data callback.
func (p *Parser) FeedCodepoints(cb Callback, codepoints []rune) {
	for _, r := range codepoints {
		if r < 0x80 {
			p.feedByte(cb, byte(r))
			continue
		}
		if p.escPending {
			// A one-byte lookahead mid code point makes no sense; resolve it
			// against the control bytes a code point stream can still carry.
			p.resolveEscPending(cb, byte(r))
			continue
		}
		if p.state == StateGround && r >= 0xA0 {
			p.appendPrint(cb, r)
			continue
		}
		if r <= 0xFF {
			p.flushPrint(cb)
			p.utf8.reset()
			p.runTableByte(cb, byte(r))
			continue
		}
		// A code point above 0xFF arriving outside Ground (e.g. inside an
		// OSC string) has no single byte to hand the table, since the table
		// is indexed by byte value. Re-encode it and deliver it the way the
		// byte-oriented front end would have: one data byte per call.
		var buf [4]byte
		encoded := appendRune(buf[:0], r)
		for _, eb := range encoded {
			p.deliverRawData(cb, eb)
		}
	}
}

// Flush forces out any batch of printable text sitting in the print buffer.
// FeedBytes and FeedCodepoints never do this implicitly mid-stream, to keep
// chunked input byte-for-byte equivalent to unchunked input; call Flush once
// the caller knows no more bytes are coming.
func (p *Parser) Flush(cb Callback) {
	p.flushPrint(cb)
}

func (p *Parser) feedByte(cb Callback, b byte) {
	if p.escPending {
		p.resolveEscPending(cb, b)
		return
	}

	if p.state == StateGround {
		if b >= 0x20 && b <= 0x7E {
			p.appendPrint(cb, rune(b))
			return
		}
		if b >= 0x80 {
			// 0x80-0x9F is the C1 control range. At a fresh lead position
			// (no multi-byte sequence already under way) those bytes mean
			// C1 introducers, the same as their 7-bit ESC-prefixed
			// equivalents, and must reach the anywhere overlay directly: a
			// terminal that honors 8-bit C1 controls cannot also read
			// those same byte values as UTF-8 lead bytes. Only when the
			// assembler is already mid-sequence do they get to act as
			// continuation bytes instead.
			if b <= 0x9F && !p.utf8.inProgress() {
				p.flushPrint(cb)
				p.runTableByte(cb, b)
				return
			}
			r, ok := p.utf8.step(b)
			if !ok {
				return
			}
			if r >= 0xA0 {
				p.appendPrint(cb, r)
				return
			}
			p.flushPrint(cb)
			p.runTableByte(cb, byte(r))
			return
		}
	}

	p.flushPrint(cb)
	p.utf8.reset()
	p.runTableByte(cb, b)
}

// resolveEscPending handles the byte right after an ESC seen while
// collecting an OSC/DCS-passthrough/SOS-PM-APC string. A backslash
// completes the String Terminator; anything else means the ESC was the
// start of a new escape sequence, not a terminator, so the current string
// is aborted and the byte is replayed as the first byte of Escape.
func (p *Parser) resolveEscPending(cb Callback, b byte) {
	p.escPending = false
	if b == 0x5C {
		p.terminateString(cb)
		return
	}
	p.abortStringForEscape(cb)
	p.runTableByte(cb, b)
}

func (p *Parser) terminateString(cb Callback) {
	if exit := exitActions[p.state]; exit != actionNone {
		p.dispatchAction(cb, exit, 0)
	}
	p.state = StateGround
}

func (p *Parser) abortStringForEscape(cb Callback) {
	if exit := exitActions[p.state]; exit != actionNone {
		p.dispatchAction(cb, exit, 0)
	}
	p.state = StateEscape
	if entry := entryActions[StateEscape]; entry != actionNone {
		p.dispatchAction(cb, entry, 0)
	}
}

// deliverRawData hands one data byte to whichever data-carrying callback
// the current state implies, without consulting the transition table. Used
// only to redeliver the bytes of a re-encoded code point that arrived via
// FeedCodepoints while collecting a string; the table's anywhere C1 overlay
// would otherwise misinterpret a UTF-8 continuation byte as a control code.
func (p *Parser) deliverRawData(cb Callback, b byte) {
	switch p.state {
	case StateOSCString:
		cb.OscPut(b)
	case StateDCSPassthrough:
		cb.Put(b)
	default:
		// SOS/PM/APC content is discarded per the specification; any other
		// state has no business receiving a data byte here.
	}
}

// runTableByte consults the transition table for exactly one byte and
// performs whatever it says: an in-place action, or a full exit/action/entry
// state change.
func (p *Parser) runTableByte(cb Callback, b byte) {
	switch p.state {
	case StateOSCString, StateDCSPassthrough, StateSOSPMApcString:
		if b == 0x1B {
			p.escPending = true
			return
		}
	}

	entry := transitions[p.state][b]
	if entry.action == actionNone && !entry.hasNext {
		p.dispatchAction(cb, ActionError, b)
		return
	}
	if !entry.hasNext {
		p.dispatchAction(cb, entry.action, b)
		return
	}
	p.changeState(cb, entry.action, entry.next, b)
}

// changeState performs a full state change in the order the specification
// requires: the old state's exit action, then the transition's own action,
// then the new state's entry action.
func (p *Parser) changeState(cb Callback, action Action, next State, b byte) {
	old := p.state
	if exit := exitActions[old]; exit != actionNone {
		p.dispatchAction(cb, exit, b)
	}
	if action != actionNone {
		p.dispatchAction(cb, action, b)
	}
	p.state = next
	if entry := entryActions[next]; entry != actionNone {
		p.dispatchAction(cb, entry, b)
	}
}

// dispatchAction runs a single action, either emitting to cb or updating the
// parser's own accumulators.
func (p *Parser) dispatchAction(cb Callback, action Action, b byte) {
	switch action {
	case ActionPrint:
		p.appendPrint(cb, rune(b))
	case ActionExecute:
		cb.Execute(b)
	case ActionHook:
		p.finalizeCurrentParam()
		cb.Hook(p.params, p.intermediates, p.ignoring, rune(b))
	case ActionPut:
		cb.Put(b)
	case ActionUnhook:
		cb.Unhook()
	case ActionOscStart:
		cb.OscStart()
	case ActionOscPut:
		cb.OscPut(b)
	case ActionOscEnd:
		cb.OscEnd()
	case ActionCSIDispatch:
		p.finalizeCurrentParam()
		cb.CsiDispatch(p.params, p.intermediates, p.ignoring, rune(b))
	case ActionEscDispatch:
		cb.EscDispatch(p.intermediates, p.ignoring, b)
	case ActionCollect:
		p.collect(b)
	case ActionParam:
		p.param(b)
	case ActionClear:
		p.clearAccumulators()
	case ActionIgnore, actionNone:
		// nothing to do
	default:
		cb.Error()
	}
}

func (p *Parser) appendPrint(cb Callback, r rune) {
	p.printBuf = append(p.printBuf, r)
	if len(p.printBuf) >= PrintBufferSize {
		p.flushPrint(cb)
	}
}

func (p *Parser) flushPrint(cb Callback) {
	if len(p.printBuf) == 0 {
		return
	}
	cb.Print(p.printBuf)
	p.printBuf = p.printBuf[:0]
}

func (p *Parser) collect(b byte) {
	if len(p.intermediates) < MaxIntermediates {
		p.intermediates = append(p.intermediates, b)
		return
	}
	p.ignoring = true
}

// param accumulates one parameter byte: a digit extends the parameter
// currently being built, a semicolon ends it and starts a new top-level
// parameter, a colon ends it and starts a subparameter of the same group.
func (p *Parser) param(b byte) {
	switch b {
	case ';':
		p.endParam(false)
	case ':':
		p.endParam(true)
	default:
		digit := uint32(b - '0')
		if !p.hasCurParam {
			p.curParam = digit
			p.hasCurParam = true
			return
		}
		if p.curParam > (^uint32(0)-digit)/10 {
			// The next digit would overflow the 32-bit range; saturate
			// rather than wrap.
			p.curParam = ^uint32(0)
			return
		}
		p.curParam = p.curParam*10 + digit
	}
}

func (p *Parser) endParam(startsSubparam bool) {
	value := uint32(0)
	if p.hasCurParam {
		value = p.curParam
	}
	if p.params.IsFull() {
		p.ignoring = true
	} else if p.inSubparam {
		p.params.Extend(value)
	} else {
		p.params.Push(value)
	}
	p.inSubparam = startsSubparam
	p.curParam = 0
	p.hasCurParam = false
}

// finalizeCurrentParam pushes a parameter that was still being built when a
// dispatch byte arrived. A bare dispatch with no digits seen at all (e.g.
// plain "CSI m") leaves the parameter list empty rather than gaining a
// trailing zero; that distinction matters to hosts that treat an empty list
// and an explicit zero as different defaults.
func (p *Parser) finalizeCurrentParam() {
	if !p.hasCurParam {
		return
	}
	if p.params.IsFull() {
		p.ignoring = true
		return
	}
	if p.inSubparam {
		p.params.Extend(p.curParam)
	} else {
		p.params.Push(p.curParam)
	}
}

func (p *Parser) clearAccumulators() {
	p.intermediates = p.intermediates[:0]
	p.params.Clear()
	p.curParam = 0
	p.hasCurParam = false
	p.inSubparam = false
	p.ignoring = false
}

// appendRune is a tiny local stand-in for utf8.AppendRune, used to re-encode
// code points for FeedCodepoints. Unlike the standard library's stricter
// encoder it does not substitute U+FFFD for surrogate halves, matching the
// lenient front end it pairs with.
func appendRune(buf []byte, r rune) []byte {
	switch {
	case r < 0x80:
		return append(buf, byte(r))
	case r < 0x800:
		return append(buf, byte(0xC0|r>>6), byte(0x80|r&0x3F))
	case r < 0x10000:
		return append(buf, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	default:
		return append(buf, byte(0xF0|r>>18), byte(0x80|(r>>12)&0x3F), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	}
}
