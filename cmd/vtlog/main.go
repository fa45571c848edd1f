// Command vtlog parses bytes from stdin and logs every action the parser
// emits, one line per action. Where cmd/ttycapture only counts the events
// of a live program's output, vtlog makes a saved capture (or any byte
// stream) human-readable event by event.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tty-kit/vtparse"
)

type logCallback struct {
	vtparse.NoopCallback
}

func (l *logCallback) Print(codepoints []rune) {
	fmt.Printf("[print] %q\n", string(codepoints))
}

func (l *logCallback) Execute(b byte) {
	fmt.Printf("[execute] 0x%02x%s\n", b, controlName(b))
}

func (l *logCallback) Hook(params *vtparse.Params, intermediates []byte, ignore bool, action rune) {
	fmt.Printf("[hook] params=%v intermediates=%q ignore=%v action=%q\n", params, intermediates, ignore, action)
}

func (l *logCallback) Put(b byte) {
	fmt.Printf("[put] 0x%02x\n", b)
}

func (l *logCallback) Unhook() {
	fmt.Println("[unhook]")
}

func (l *logCallback) OscStart() {
	fmt.Println("[osc_start]")
}

func (l *logCallback) OscPut(b byte) {
	fmt.Printf("[osc_put] 0x%02x\n", b)
}

func (l *logCallback) OscEnd() {
	fmt.Println("[osc_end]")
}

func (l *logCallback) CsiDispatch(params *vtparse.Params, intermediates []byte, ignore bool, action rune) {
	fmt.Printf("[csi_dispatch] params=%v intermediates=%q ignore=%v action=%q\n", params, intermediates, ignore, action)
}

func (l *logCallback) EscDispatch(intermediates []byte, ignore bool, b byte) {
	fmt.Printf("[esc_dispatch] intermediates=%q ignore=%v byte=0x%02x\n", intermediates, ignore, b)
}

func (l *logCallback) Error() {
	fmt.Println("[error] unreachable table entry")
}

func controlName(b byte) string {
	switch b {
	case 0x07:
		return " (BEL)"
	case 0x08:
		return " (BS)"
	case 0x09:
		return " (HT)"
	case 0x0A:
		return " (LF)"
	case 0x0D:
		return " (CR)"
	case 0x1B:
		return " (ESC)"
	default:
		return ""
	}
}

func main() {
	parser := vtparse.NewParser()
	cb := &logCallback{}

	reader := bufio.NewReader(os.Stdin)
	buf := make([]byte, 4096)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			parser.FeedBytes(cb, buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "vtlog: read error: %v\n", err)
				os.Exit(1)
			}
			break
		}
	}
	parser.Flush(cb)
}
