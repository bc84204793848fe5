package jsontok

import (
	"unicode/utf8"

	"github.com/c53mike/wuffs/buffer"
	"github.com/c53mike/wuffs/token"
)

// scanString advances a string chain. The first fragment includes the
// opening quote and the last the closing quote; fragment boundaries come
// from \u-class escapes (which become UnicodeCodePoint tokens of their
// own), from window or token-buffer exhaustion, and from the per-token
// length cap. Nothing is consumed for a fragment until its token has been
// appended, so the scan restarts cleanly after either suspension.
func (d *Decoder) scanString(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	win := src.Window()
	i := 0
	vbd := uint32(token.StringDefinitelyUTF8)
	if !d.strOpened {
		i = 1 // the opening quote, guaranteed by the dispatcher
	}

	for {
		if i >= len(win) {
			if src.Closed() {
				return 0, decodeErr("json: unclosed string")
			}
			return d.suspendString(dst, src, i, vbd)
		}
		// Flush with headroom so no scan unit (a rune or an escape, at
		// most 12 bytes) can push a fragment past the length cap.
		if i+12 > token.MaxLength {
			if !d.flushFragment(dst, src, i, vbd) {
				return ctrlShortWrite, nil
			}
			return ctrlLoop, nil
		}

		b := win[i]
		switch {
		case b == '"':
			t := token.Token{
				Length:   uint16(i + 1),
				LinkPrev: d.strChain,
				VBC:      token.String,
				VBD:      vbd,
			}
			if !emit(dst, src, t, i+1) {
				return ctrlShortWrite, nil
			}
			d.strOpened = false
			d.strChain = false
			if d.strIsName {
				d.state = stateColon
			} else {
				d.finishValue()
			}
			return ctrlLoop, nil

		case b == '\\':
			simple, n, err := d.classifyEscape(win[i:], src.Closed())
			if err != nil {
				return 0, err
			}
			if n == 0 {
				// The escape straddles the window boundary.
				return d.suspendString(dst, src, i, vbd)
			}
			if simple {
				vbd |= token.StringBackslashEscapes
				i += n
				continue
			}
			return d.emitCodePointEscape(dst, src, i, vbd)

		case b < 0x20:
			return 0, decodeErr("json: unescaped control character in string")

		case b < 0x80:
			i++

		default:
			r, size := utf8.DecodeRune(win[i:])
			if r == utf8.RuneError && size <= 1 {
				if !utf8.FullRune(win[i:]) && !src.Closed() {
					// A multi-byte rune straddles the window boundary;
					// leave it unconsumed for the next refill.
					return d.suspendString(dst, src, i, vbd)
				}
				if !d.quirks.ReplaceInvalidUnicode {
					return 0, decodeErr("json: invalid UTF-8 in string")
				}
				vbd |= token.StringReplacedInvalid
				i++
				continue
			}
			i += size
		}
	}
}

// suspendString flushes the fragment scanned so far, if any, and suspends
// for more source bytes.
func (d *Decoder) suspendString(dst *buffer.Tokens, src *buffer.Source, i int, vbd uint32) (ctrl, error) {
	if i > 0 {
		if !d.flushFragment(dst, src, i, vbd) {
			return ctrlShortWrite, nil
		}
	}
	return ctrlShortRead, nil
}

// flushFragment emits the first n window bytes as a non-final string
// fragment and reports whether it fit.
func (d *Decoder) flushFragment(dst *buffer.Tokens, src *buffer.Source, n int, vbd uint32) bool {
	t := token.Token{
		Length:   uint16(n),
		LinkPrev: d.strChain,
		LinkNext: true,
		VBC:      token.String,
		VBD:      vbd,
	}
	if !emit(dst, src, t, n) {
		return false
	}
	d.strOpened = true
	d.strChain = true
	return true
}

// classifyEscape inspects the escape at the start of rem. It returns
// simple=true with the escape's byte count when the escape stays inside
// its fragment, simple=false for code-point escapes (handled by
// emitCodePointEscape), n==0 when more source bytes are needed, or an
// error for malformed or disallowed escapes. rem[0] is the backslash.
func (d *Decoder) classifyEscape(rem []byte, closed bool) (simple bool, n int, err error) {
	needs := func() (bool, int, error) {
		if closed {
			return false, 0, decodeErr("json: unclosed string")
		}
		return false, 0, nil
	}
	if len(rem) < 2 {
		return needs()
	}
	q := &d.quirks

	switch e := rem[1]; {
	case e == '"' || e == '\\' || e == '/' || e == 'b' || e == 'f' || e == 'n' || e == 'r' || e == 't',
		e == 'a' && q.AllowBackslashA,
		e == 'e' && q.AllowBackslashE,
		e == '?' && q.AllowBackslashQuestionMark,
		e == '\'' && q.AllowBackslashSingleQuote,
		e == 'v' && q.AllowBackslashV,
		e == '0' && q.AllowBackslashZero:
		return true, 2, nil

	case e == 'x' && q.AllowBackslashX:
		if len(rem) < 4 {
			return needs()
		}
		return false, 4, nil

	case e == 'u':
		if len(rem) < 6 {
			return needs()
		}
		cp, ok := parseHex(rem[2:6])
		if !ok {
			return false, 0, decodeErr("json: bad backslash-u escape")
		}
		if cp >= 0xD800 && cp <= 0xDBFF && len(rem) < 12 && !closed {
			// A surrogate pair is decoded as one unit.
			return false, 0, nil
		}
		return false, 6, nil

	case e == 'U' && q.AllowBackslashCapitalU:
		if len(rem) < 10 {
			return needs()
		}
		return false, 10, nil

	default:
		return false, 0, decodeErr("json: bad backslash escape")
	}
}

// emitCodePointEscape flushes the content fragment preceding the escape at
// window offset i, then emits the escape as its own UnicodeCodePoint token
// linked into the chain. classifyEscape has verified the bytes are
// present.
func (d *Decoder) emitCodePointEscape(dst *buffer.Tokens, src *buffer.Source, i int, vbd uint32) (ctrl, error) {
	if i > 0 {
		if !d.flushFragment(dst, src, i, vbd) {
			return ctrlShortWrite, nil
		}
		return ctrlLoop, nil // reenter with the escape at the window start
	}

	rem := src.Window()
	var n int
	var cp uint32
	switch rem[1] {
	case 'x':
		v, ok := parseHex(rem[2:4])
		if !ok {
			return 0, decodeErr("json: bad backslash-x escape")
		}
		n, cp = 4, v
	case 'u':
		hi, _ := parseHex(rem[2:6]) // validated by classifyEscape
		switch {
		case hi >= 0xD800 && hi <= 0xDBFF:
			if len(rem) >= 12 && rem[6] == '\\' && rem[7] == 'u' {
				lo, ok := parseHex(rem[8:12])
				if ok && lo >= 0xDC00 && lo <= 0xDFFF {
					n = 12
					cp = 0x10000 + ((hi - 0xD800) << 10) + (lo - 0xDC00)
					break
				}
			}
			if !d.quirks.ReplaceInvalidUnicode {
				return 0, decodeErr("json: unpaired surrogate escape")
			}
			n, cp = 6, 0xFFFD
		case hi >= 0xDC00 && hi <= 0xDFFF:
			if !d.quirks.ReplaceInvalidUnicode {
				return 0, decodeErr("json: unpaired surrogate escape")
			}
			n, cp = 6, 0xFFFD
		default:
			n, cp = 6, hi
		}
	case 'U':
		v, ok := parseHex(rem[2:10])
		if !ok || v > 0x10FFFF {
			return 0, decodeErr("json: bad backslash-U escape")
		}
		if v >= 0xD800 && v <= 0xDFFF {
			if !d.quirks.ReplaceInvalidUnicode {
				return 0, decodeErr("json: unpaired surrogate escape")
			}
			v = 0xFFFD
		}
		n, cp = 10, v
	}

	t := token.Token{
		Length:   uint16(n),
		LinkPrev: true,
		LinkNext: true,
		VBC:      token.UnicodeCodePoint,
		VBD:      cp,
	}
	if !emit(dst, src, t, n) {
		return ctrlShortWrite, nil
	}
	d.strOpened = true
	d.strChain = true
	return ctrlLoop, nil
}

func parseHex(b []byte) (uint32, bool) {
	var v uint32
	for _, c := range b {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint32(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}
