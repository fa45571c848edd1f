package vtparse

// utf8Assembler reassembles UTF-8 byte sequences into code points using the
// same bit-counting algorithm as the original vtparse.c, not Go's
// unicode/utf8 package. The two differ on purpose: unicode/utf8 rejects
// overlong encodings, surrogate halves, and the 5- and 6-byte lead bytes
// that predate RFC 3629, returning RuneError. A terminal parser has no
// business imposing a stricter validation policy on application-level text
// than the reference implementation it is compatible with does. The
// assembler below reproduces that reference implementation's own
// classification exactly, including its quirks: a byte that looks like
// a continuation byte but arrives with no sequence in progress is silently
// dropped rather than printed (the original's bit-scan finds ch_bytes == 1
// for such a byte and its action switch has no case for that, so the byte
// never reaches the callback at all), and 0xFC/0xFD/0xFE/0xFF are all
// classified as 6-byte leads rather than 0xFC/0xFD being 5-byte leads,
// because the original's scan loop (`do { ... bit--; } while(bit > 1)`)
// cannot stop at bit 1, so it cannot tell those four bytes apart. Once a
// sequence is under way it also does not check that the bytes feeding it
// are actually shaped like continuation bytes (0x80-0xBF) — the original
// just masks whatever byte arrives with 0x3F and keeps counting down, so a
// lead byte that turns out to be followed by something else entirely (an
// ASCII letter, another lead byte) gets folded into the wrong code point
// instead of aborting the sequence. That is a real quirk of the reference
// implementation, reproduced here rather than patched over.
type utf8Assembler struct {
	remaining   int
	accumulator rune
}

// reset discards any in-progress sequence. The parser calls it whenever a
// byte or code point bypasses the assembler (a C0 control in Ground, or any
// input outside Ground); a partial code point spanning a FeedBytes call is
// otherwise expected to survive to the next call.
func (u *utf8Assembler) reset() {
	u.remaining = 0
	u.accumulator = 0
}

// inProgress reports whether the assembler is mid-sequence, waiting on at
// least one more continuation byte.
func (u *utf8Assembler) inProgress() bool {
	return u.remaining > 0
}

// step feeds one byte to the assembler. It returns a code point and true
// once a sequence completes (including the trivial one-byte ASCII case);
// otherwise it returns (0, false) while more continuation bytes are needed.
func (u *utf8Assembler) step(b byte) (rune, bool) {
	if u.remaining == 0 {
		switch {
		case b < 0x80:
			return rune(b), true
		case b&0xC0 == 0x80:
			// A continuation byte with no sequence in progress. The
			// original drops it on the floor rather than emitting
			// anything for it; returning (0, false) with remaining left
			// at 0 reproduces that exactly, since the next byte is then
			// treated as a fresh, unrelated lead.
			return 0, false
		case b&0xE0 == 0xC0:
			u.remaining = 1
			u.accumulator = rune(b & 0x1F)
		case b&0xF0 == 0xE0:
			u.remaining = 2
			u.accumulator = rune(b & 0x0F)
		case b&0xF8 == 0xF0:
			u.remaining = 3
			u.accumulator = rune(b & 0x07)
		case b&0xFC == 0xF8:
			u.remaining = 4
			u.accumulator = rune(b & 0x03)
		default:
			// 0xFC/0xFD/0xFE/0xFF: the original's scan loop cannot stop at
			// bit 1, so all four are classified identically as 6-byte
			// leads.
			u.remaining = 5
			u.accumulator = rune(b & 0x01)
		}
		return 0, false
	}

	u.accumulator = (u.accumulator << 6) | rune(b&0x3F)
	u.remaining--
	if u.remaining == 0 {
		return u.accumulator, true
	}
	return 0, false
}
