package jsontok

import (
	"github.com/c53mike/wuffs/buffer"
	"github.com/c53mike/wuffs/token"
)

// matchAt compares a window prefix to word, optionally folding ASCII case.
// match means win begins with word; pending means win is a proper prefix
// of word and more input may still arrive. word must be lower case when
// fold is set.
func matchAt(win []byte, closed bool, word string, fold bool) (match, pending bool) {
	n := len(word)
	if len(win) < n {
		n = len(win)
	}
	for i := 0; i < n; i++ {
		b := win[i]
		if fold && 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if b != word[i] {
			return false, false
		}
	}
	if len(win) < len(word) {
		return false, !closed
	}
	return true, false
}

// scanValueWord tokenizes a literal or a number. The window is non-empty
// and its first byte is not structural, a quote or filler.
func (d *Decoder) scanValueWord(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	win := src.Window()
	b := win[0]
	switch {
	case b == '-' || (b >= '0' && b <= '9'):
		return d.scanNumber(dst, src)
	case b == '+' && d.quirks.AllowInfNaNNumbers:
		return d.scanNumber(dst, src)
	case b == 'n' || b == 'N':
		match, pending := matchAt(win, src.Closed(), "null", false)
		if match {
			return d.emitValueWord(dst, src, 4, token.Literal, token.LiteralNull)
		}
		if d.quirks.AllowInfNaNNumbers {
			m, p := matchAt(win, src.Closed(), "nan", true)
			if m {
				return d.emitValueWord(dst, src, 3, token.Number, token.NumberFloat|token.NumberNaN)
			}
			pending = pending || p
		}
		if pending {
			return ctrlShortRead, nil
		}
		return 0, decodeErr("json: bad input")
	case b == 't':
		match, pending := matchAt(win, src.Closed(), "true", false)
		if match {
			return d.emitValueWord(dst, src, 4, token.Literal, token.LiteralTrue)
		}
		if pending {
			return ctrlShortRead, nil
		}
		return 0, decodeErr("json: bad input")
	case b == 'f':
		match, pending := matchAt(win, src.Closed(), "false", false)
		if match {
			return d.emitValueWord(dst, src, 5, token.Literal, token.LiteralFalse)
		}
		if pending {
			return ctrlShortRead, nil
		}
		return 0, decodeErr("json: bad input")
	case (b == 'i' || b == 'I') && d.quirks.AllowInfNaNNumbers:
		return d.scanInf(dst, src, 0)
	default:
		return 0, decodeErr("json: bad input")
	}
}

// scanInf matches "infinity" or "inf", longest first, starting sign bytes
// into the window. A window ending inside "infinity" stays undecided even
// when "inf" already matches.
func (d *Decoder) scanInf(dst *buffer.Tokens, src *buffer.Source, sign int) (ctrl, error) {
	rest := src.Window()[sign:]
	m, pending := matchAt(rest, src.Closed(), "infinity", true)
	if m {
		return d.emitValueWord(dst, src, sign+8, token.Number, token.NumberFloat|token.NumberInf)
	}
	if pending {
		return ctrlShortRead, nil
	}
	m, _ = matchAt(rest, src.Closed(), "inf", true)
	if m {
		return d.emitValueWord(dst, src, sign+3, token.Number, token.NumberFloat|token.NumberInf)
	}
	return 0, decodeErr("json: bad input")
}

func (d *Decoder) emitValueWord(dst *buffer.Tokens, src *buffer.Source, n int, vbc token.BaseCategory, vbd uint32) (ctrl, error) {
	t := token.Token{Length: uint16(n), VBC: vbc, VBD: vbd}
	if !emit(dst, src, t, n) {
		return ctrlShortWrite, nil
	}
	d.finishValue()
	return ctrlLoop, nil
}

// scanNumber tokenizes one number literal. Numbers are scanned whole: the
// scan suspends without consuming anything whenever the window might be
// missing trailing bytes, so a rescan after a refill always starts from
// the first byte again.
func (d *Decoder) scanNumber(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	win := src.Window()
	i := 0
	if win[i] == '-' || win[i] == '+' {
		plus := win[i] == '+'
		i++
		if i == len(win) {
			return d.numberEnd(dst, src, i, 0, false)
		}
		if b := win[i]; d.quirks.AllowInfNaNNumbers &&
			(b == 'i' || b == 'I' || b == 'n' || b == 'N') {
			if b == 'i' || b == 'I' {
				return d.scanInf(dst, src, i)
			}
			m, pending := matchAt(win[i:], src.Closed(), "nan", true)
			if m {
				return d.emitValueWord(dst, src, i+3, token.Number, token.NumberFloat|token.NumberNaN)
			}
			if pending {
				return ctrlShortRead, nil
			}
			return 0, decodeErr("json: bad input")
		}
		// A plus sign is only valid on the quirk words.
		if plus {
			return 0, decodeErr("json: bad input")
		}
	}

	vbd := uint32(token.NumberInteger)

	// Integer part: a lone 0 or a nonzero digit run.
	switch {
	case win[i] == '0':
		i++
	case win[i] >= '1' && win[i] <= '9':
		for i < len(win) && win[i] >= '0' && win[i] <= '9' {
			i++
		}
	default:
		return 0, decodeErr("json: bad input")
	}
	if i == len(win) {
		return d.numberEnd(dst, src, i, vbd, true)
	}

	// Fraction.
	if win[i] == '.' {
		vbd = token.NumberFloat
		i++
		start := i
		for i < len(win) && win[i] >= '0' && win[i] <= '9' {
			i++
		}
		if i == start {
			return d.numberEnd(dst, src, i, vbd, false)
		}
		if i == len(win) {
			return d.numberEnd(dst, src, i, vbd, true)
		}
	}

	// Exponent.
	if win[i] == 'e' || win[i] == 'E' {
		vbd = token.NumberFloat
		i++
		if i < len(win) && (win[i] == '+' || win[i] == '-') {
			i++
		}
		start := i
		for i < len(win) && win[i] >= '0' && win[i] <= '9' {
			i++
		}
		if i == start {
			return d.numberEnd(dst, src, i, vbd, false)
		}
		if i == len(win) {
			return d.numberEnd(dst, src, i, vbd, true)
		}
	}

	if i > maxNumberLength {
		return 0, decodeErr("json: unsupported number length")
	}
	return d.emitValueWord(dst, src, i, token.Number, vbd)
}

// numberEnd resolves a number scan that reached the end of the window, or
// hit a non-digit where a digit run was required. With the source closed
// the bytes scanned so far are the whole literal: emit it if it ends
// validly. Otherwise ask for more input, which is a hard error when no
// refill can provide any.
func (d *Decoder) numberEnd(dst *buffer.Tokens, src *buffer.Source, i int, vbd uint32, validEnd bool) (ctrl, error) {
	if i < len(src.Window()) {
		// Not a window boundary: the literal ended mid-token.
		return 0, decodeErr("json: bad input")
	}
	if src.Closed() {
		if !validEnd {
			return 0, decodeErr("json: bad input")
		}
		if i > maxNumberLength {
			return 0, decodeErr("json: unsupported number length")
		}
		return d.emitValueWord(dst, src, i, token.Number, vbd)
	}
	if i > maxNumberLength || src.Full() {
		return 0, decodeErr("json: unsupported number length")
	}
	return ctrlShortRead, nil
}

// scanComment consumes one line or block comment, fragmenting across
// window boundaries with link bits like a string chain.
func (d *Decoder) scanComment(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	if d.comment == commentLine {
		return d.scanCommentLine(dst, src)
	}
	return d.scanCommentBlock(dst, src)
}

func (d *Decoder) scanCommentLine(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	win := src.Window()
	limit := len(win)
	if limit > token.MaxLength {
		limit = token.MaxLength
	}
	for j := 0; j < limit; j++ {
		if win[j] == '\n' {
			return d.finishComment(dst, src, j+1, token.FillerCommentLine)
		}
	}
	if limit == len(win) {
		if src.Closed() {
			// End of input ends a line comment just as a newline does.
			return d.finishComment(dst, src, limit, token.FillerCommentLine)
		}
		if !src.Full() {
			return ctrlShortRead, nil
		}
		// The window cannot grow. Flush all but one byte so the comment
		// always ends on a fragment with content, never an empty one.
		limit--
	}
	return d.flushComment(dst, src, limit, token.FillerCommentLine)
}

func (d *Decoder) scanCommentBlock(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	win := src.Window()
	// The opener's star cannot also close the comment, so the closer scan
	// starts past it.
	scanFrom := 0
	if !d.cmtOpened {
		scanFrom = 2
	}
	limit := len(win)
	if limit > token.MaxLength {
		limit = token.MaxLength
	}
	for j := scanFrom; j+1 < limit; j++ {
		if win[j] == '*' && win[j+1] == '/' {
			return d.finishComment(dst, src, j+2, token.FillerCommentBlock)
		}
	}
	if src.Closed() && limit == len(win) {
		return 0, decodeErr("json: unclosed comment")
	}
	if limit == len(win) && !src.Full() {
		return ctrlShortRead, nil
	}
	// Flush everything scanned, holding back a trailing star that might
	// pair with a slash in the next window.
	n := limit
	if n-1 >= scanFrom && win[n-1] == '*' {
		n--
	}
	if n == 0 {
		return ctrlShortRead, nil
	}
	return d.flushComment(dst, src, n, token.FillerCommentBlock)
}

// finishComment emits the closing fragment and returns the decoder to
// ordinary filler scanning.
func (d *Decoder) finishComment(dst *buffer.Tokens, src *buffer.Source, n int, vbd uint32) (ctrl, error) {
	t := token.Token{Length: uint16(n), LinkPrev: d.cmtChain, VBC: token.Filler, VBD: vbd}
	if !emit(dst, src, t, n) {
		return ctrlShortWrite, nil
	}
	d.comment = commentNone
	d.cmtOpened = false
	d.cmtChain = false
	return ctrlLoop, nil
}

// flushComment emits a non-final fragment. The scan re-enters with the
// remainder of the comment at the start of the window.
func (d *Decoder) flushComment(dst *buffer.Tokens, src *buffer.Source, n int, vbd uint32) (ctrl, error) {
	t := token.Token{Length: uint16(n), LinkPrev: d.cmtChain, LinkNext: true, VBC: token.Filler, VBD: vbd}
	if !emit(dst, src, t, n) {
		return ctrlShortWrite, nil
	}
	d.cmtOpened = true
	d.cmtChain = true
	return ctrlLoop, nil
}
