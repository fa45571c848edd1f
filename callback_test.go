package vtparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingCallback captures every event it receives, in order, for
// assertions. Intermediate and parameter slices are copied since the parser
// reuses their backing storage between calls.
type recordingCallback struct {
	printed    []rune
	printCalls int
	executed   []byte

	hooks []hookCall
	puts  []byte
	unhooks int

	oscStarts int
	oscPuts   []byte
	oscEnds   int

	csiDispatches []csiCall
	escDispatches []escCall

	errors int
}

type hookCall struct {
	params        []uint32
	intermediates []byte
	ignore        bool
	action        rune
}

type csiCall struct {
	params        []uint32
	intermediates []byte
	ignore        bool
	action        rune
}

type escCall struct {
	intermediates []byte
	ignore        bool
	b             byte
}

func (c *recordingCallback) Print(codepoints []rune) {
	c.printed = append(c.printed, codepoints...)
	c.printCalls++
}

func (c *recordingCallback) Execute(b byte) {
	c.executed = append(c.executed, b)
}

func (c *recordingCallback) Hook(params *Params, intermediates []byte, ignore bool, action rune) {
	c.hooks = append(c.hooks, hookCall{
		params:        params.All(),
		intermediates: append([]byte(nil), intermediates...),
		ignore:        ignore,
		action:        action,
	})
}

func (c *recordingCallback) Put(b byte) {
	c.puts = append(c.puts, b)
}

func (c *recordingCallback) Unhook() {
	c.unhooks++
}

func (c *recordingCallback) OscStart() {
	c.oscStarts++
}

func (c *recordingCallback) OscPut(b byte) {
	c.oscPuts = append(c.oscPuts, b)
}

func (c *recordingCallback) OscEnd() {
	c.oscEnds++
}

func (c *recordingCallback) CsiDispatch(params *Params, intermediates []byte, ignore bool, action rune) {
	c.csiDispatches = append(c.csiDispatches, csiCall{
		params:        params.All(),
		intermediates: append([]byte(nil), intermediates...),
		ignore:        ignore,
		action:        action,
	})
}

func (c *recordingCallback) EscDispatch(intermediates []byte, ignore bool, b byte) {
	c.escDispatches = append(c.escDispatches, escCall{
		intermediates: append([]byte(nil), intermediates...),
		ignore:        ignore,
		b:             b,
	})
}

func (c *recordingCallback) Error() {
	c.errors++
}

var _ Callback = (*recordingCallback)(nil)

func TestNoopCallback(t *testing.T) {
	// NoopCallback must satisfy the interface and do nothing observable;
	// this just exercises every method so a signature change trips a
	// compile error here rather than downstream.
	var cb NoopCallback
	cb.Print([]rune{'x'})
	cb.Execute(0x07)
	cb.Hook(NewParams(), nil, false, 'q')
	cb.Put('a')
	cb.Unhook()
	cb.OscStart()
	cb.OscPut('a')
	cb.OscEnd()
	cb.CsiDispatch(NewParams(), nil, false, 'm')
	cb.EscDispatch(nil, false, 'c')
	cb.Error()
}

func TestRecordingCallbackImplementsCallback(t *testing.T) {
	var cb Callback = &recordingCallback{}
	assert.NotNil(t, cb)
}
