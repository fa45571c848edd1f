// Command ttycapture starts a program under a pseudo-terminal, puts the
// controlling terminal into raw mode for the duration, and feeds everything
// the child writes through a vtparse.Parser, reporting a summary of what the
// parser saw. It exists to exercise the parser against a real, unpredictable
// byte stream from a live program rather than canned fixtures.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/tty-kit/vtparse"
)

type captureStats struct {
	printed       int
	executed      int
	csiDispatches int
	escDispatches int
	oscStrings    int
	dcsStrings    int
	errors        int
}

type statsCallback struct {
	vtparse.NoopCallback
	stats *captureStats
}

func (s *statsCallback) Print(codepoints []rune) { s.stats.printed += len(codepoints) }
func (s *statsCallback) Execute(byte)             { s.stats.executed++ }
func (s *statsCallback) CsiDispatch(*vtparse.Params, []byte, bool, rune) {
	s.stats.csiDispatches++
}
func (s *statsCallback) EscDispatch([]byte, bool, byte) { s.stats.escDispatches++ }
func (s *statsCallback) OscStart()                       { s.stats.oscStrings++ }
func (s *statsCallback) Hook(*vtparse.Params, []byte, bool, rune) { s.stats.dcsStrings++ }
func (s *statsCallback) Error()                          { s.stats.errors++ }

func main() {
	duration := flag.Duration("duration", 3*time.Second, "how long to capture output for")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"ps", "aux"}
	}

	stats := &captureStats{}
	if err := capture(args[0], args[1:], *duration, stats); err != nil {
		log.Fatalf("ttycapture: %v", err)
	}

	fmt.Println("=== capture summary ===")
	fmt.Printf("print events:   %d codepoints\n", stats.printed)
	fmt.Printf("executed:       %d control bytes\n", stats.executed)
	fmt.Printf("csi dispatches: %d\n", stats.csiDispatches)
	fmt.Printf("esc dispatches: %d\n", stats.escDispatches)
	fmt.Printf("osc strings:    %d\n", stats.oscStrings)
	fmt.Printf("dcs strings:    %d\n", stats.dcsStrings)
	fmt.Printf("table errors:   %d (should always be 0)\n", stats.errors)
}

func capture(program string, args []string, duration time.Duration, stats *captureStats) error {
	cmd := exec.Command(program, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("starting %s under pty: %w", program, err)
	}
	defer ptmx.Close()

	if width, height, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
		if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)}); err != nil {
			log.Printf("warning: unable to set pty size: %v", err)
		}
	}

	var restore func() error
	if oldState, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
		restore = func() error { return term.Restore(int(os.Stdin.Fd()), oldState) }
		defer restore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	parser := vtparse.NewParser()
	cb := &statsCallback{stats: stats}

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			ptmx.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
			n, err := ptmx.Read(buf)
			if n > 0 {
				parser.FeedBytes(cb, buf[:n])
			}
			if err != nil {
				if err != io.EOF && !os.IsTimeout(err) {
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()

	<-ctx.Done()
	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
	}

	parser.Flush(cb)

	if cmd.Process != nil {
		cmd.Process.Kill()
		cmd.Wait()
	}
	return nil
}
