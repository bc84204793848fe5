// Package jsontok is a streaming JSON tokenizer. It consumes bytes from a
// bounded source window and appends token records into a bounded token
// buffer, suspending with a short-read or short-write status whenever
// either buffer needs servicing. Logical values that straddle a window
// boundary are emitted as link-bit chained fragments whose lengths sum to
// the length the value would have had if tokenized whole.
package jsontok

import (
	"bytes"

	"github.com/c53mike/wuffs/buffer"
	"github.com/c53mike/wuffs/driver"
	"github.com/c53mike/wuffs/errs"
	"github.com/c53mike/wuffs/token"
)

const (
	// maxDepth bounds object/array nesting.
	maxDepth = 1024

	// maxNumberLength bounds a single number literal. Numbers are scanned
	// whole, never consumed partially, so they must fit in the source
	// window.
	maxNumberLength = 99
)

type state uint8

const (
	stateValue   state = iota // expecting a value
	stateName                 // expecting an object member name or }
	stateColon                // expecting : after a member name
	stateComma                // expecting , or the container's closer
	stateString               // inside a string chain
	stateTrailer              // after the top-level value
	stateDone
)

type commentKind uint8

const (
	commentNone commentKind = iota
	commentLine
	commentBlock
)

// ctrl tells the decode loop how a scan step ended.
type ctrl uint8

const (
	ctrlLoop       ctrl = iota // progress made, keep scanning
	ctrlPass                   // filler exhausted, window non-empty
	ctrlShortRead              // suspend for more source bytes
	ctrlShortWrite             // suspend for token buffer space
)

// Decoder tokenizes one top-level JSON value. Construct one per input
// stream; the quirk set is fixed for the decoder's lifetime. After a
// decode error every subsequent call reports the same error.
type Decoder struct {
	quirks Quirks

	state    state
	stack    []byte // nesting of '{' and '['
	closerOK bool   // a closer is valid in stateValue/stateName

	// String chain bookkeeping.
	strIsName bool
	strOpened bool // the opening quote has been consumed
	strChain  bool // an earlier fragment of this chain was emitted

	// Comment bookkeeping.
	comment   commentKind
	cmtOpened bool
	cmtChain  bool

	started bool // leading BOM / record separator handled
	err     error
}

var _ driver.Decoder = (*Decoder)(nil)

func NewDecoder(quirks Quirks) *Decoder {
	return &Decoder{
		quirks: quirks,
		stack:  make([]byte, 0, 16),
	}
}

// DecodeTokens consumes source bytes and appends tokens until the input is
// fully tokenized, more input is needed, the token buffer fills, or the
// input proves malformed.
func (d *Decoder) DecodeTokens(dst *buffer.Tokens, src *buffer.Source) (driver.Status, error) {
	if d.err != nil {
		return 0, d.err
	}
	for {
		var c ctrl
		var err error
		switch {
		case d.state == stateDone:
			return driver.StatusOK, nil
		case d.state == stateString:
			c, err = d.scanString(dst, src)
		case d.comment != commentNone:
			c, err = d.scanComment(dst, src)
		default:
			c, err = d.scanFiller(dst, src)
			if c == ctrlPass && err == nil {
				c, err = d.scanStructural(dst, src)
			}
		}
		if err != nil {
			d.err = err
			return 0, err
		}
		switch c {
		case ctrlLoop:
		case ctrlShortRead:
			return driver.StatusShortRead, nil
		case ctrlShortWrite:
			return driver.StatusShortWrite, nil
		}
	}
}

// emit appends t and, only on success, consumes n source bytes. Scanning
// restarts from the unconsumed window after a short write, so a failed
// append leaves no partial state behind.
func emit(dst *buffer.Tokens, src *buffer.Source, t token.Token, n int) bool {
	if !dst.Append(t) {
		return false
	}
	src.Consume(n)
	return true
}

func decodeErr(msg string) error {
	return errs.New(errs.KindDecode, msg)
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

var bomBytes = []byte{0xEF, 0xBB, 0xBF}

// scanLeading consumes quirk-enabled leading bytes (byte order mark, ASCII
// record separator) before anything else in the stream.
func (d *Decoder) scanLeading(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	if d.quirks.AllowLeadingUnicodeByteOrderMark {
		win := src.Window()
		if len(win) < len(bomBytes) && !src.Closed() && bytes.HasPrefix(bomBytes, win) {
			return ctrlShortRead, nil
		}
		if bytes.HasPrefix(win, bomBytes) {
			if !emit(dst, src, token.Token{Length: 3}, 3) {
				return ctrlShortWrite, nil
			}
		}
	}
	if d.quirks.AllowLeadingASCIIRecordSeparator {
		win := src.Window()
		if len(win) > 0 && win[0] == 0x1E {
			if !emit(dst, src, token.Token{Length: 1}, 1) {
				return ctrlShortWrite, nil
			}
		} else if len(win) == 0 && !src.Closed() {
			return ctrlShortRead, nil
		}
	}
	d.started = true
	return ctrlLoop, nil
}

// scanFiller consumes whitespace (and detects comment openers) valid in
// every structural state. It returns ctrlPass with a non-empty window when
// a structural byte is next, and handles end-of-input per state.
func (d *Decoder) scanFiller(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	if !d.started {
		if c, err := d.scanLeading(dst, src); err != nil || c != ctrlLoop {
			return c, err
		}
	}
	for {
		win := src.Window()
		n := 0
		for n < len(win) && n < token.MaxLength && isWhitespace(win[n]) {
			n++
		}
		if n > 0 {
			if !emit(dst, src, token.Token{Length: uint16(n)}, n) {
				return ctrlShortWrite, nil
			}
			continue
		}
		if len(win) == 0 {
			if !src.Closed() {
				return ctrlShortRead, nil
			}
			return d.atEOF()
		}
		if win[0] == '/' && (d.quirks.AllowCommentBlock || d.quirks.AllowCommentLine) {
			if len(win) < 2 {
				if src.Closed() {
					return 0, decodeErr("json: bad input")
				}
				return ctrlShortRead, nil
			}
			switch {
			case win[1] == '*' && d.quirks.AllowCommentBlock:
				d.comment = commentBlock
			case win[1] == '/' && d.quirks.AllowCommentLine:
				d.comment = commentLine
			default:
				return 0, decodeErr("json: bad input")
			}
			d.cmtOpened = false
			d.cmtChain = false
			return ctrlLoop, nil
		}
		return ctrlPass, nil
	}
}

// atEOF resolves an exhausted, closed source against the current state.
func (d *Decoder) atEOF() (ctrl, error) {
	if d.state == stateTrailer {
		d.state = stateDone
		return ctrlLoop, nil
	}
	return 0, decodeErr("json: unexpected end of input")
}

// scanStructural dispatches on the first window byte according to the
// grammar state. The window is non-empty and starts with a non-filler
// byte.
func (d *Decoder) scanStructural(dst *buffer.Tokens, src *buffer.Source) (ctrl, error) {
	b := src.Window()[0]
	switch d.state {
	case stateValue:
		switch {
		case b == '{' || b == '[':
			return d.push(dst, src, b)
		case b == ']' && d.closerOK:
			return d.pop(dst, src, b)
		case b == '"':
			d.state = stateString
			d.strIsName = false
			d.strOpened = false
			d.strChain = false
			return ctrlLoop, nil
		default:
			return d.scanValueWord(dst, src)
		}
	case stateName:
		switch {
		case b == '"':
			d.state = stateString
			d.strIsName = true
			d.strOpened = false
			d.strChain = false
			return ctrlLoop, nil
		case b == '}' && d.closerOK:
			return d.pop(dst, src, b)
		default:
			return 0, decodeErr("json: bad input")
		}
	case stateColon:
		if b != ':' {
			return 0, decodeErr("json: bad input")
		}
		if !emit(dst, src, token.Token{Length: 1}, 1) {
			return ctrlShortWrite, nil
		}
		d.state = stateValue
		d.closerOK = false
		return ctrlLoop, nil
	case stateComma:
		container := d.stack[len(d.stack)-1]
		switch {
		case b == ',':
			if !emit(dst, src, token.Token{Length: 1}, 1) {
				return ctrlShortWrite, nil
			}
			if container == '{' {
				d.state = stateName
			} else {
				d.state = stateValue
			}
			d.closerOK = d.quirks.AllowExtraComma
			return ctrlLoop, nil
		case b == '}' && container == '{', b == ']' && container == '[':
			return d.pop(dst, src, b)
		default:
			return 0, decodeErr("json: bad input")
		}
	case stateTrailer:
		return 0, decodeErr("json: trailing data after top-level value")
	default:
		return 0, errs.Newf(errs.KindInternal, "json decoder in unexpected state %d", d.state)
	}
}

// containerBits maps the current nesting onto the structure token's
// from/to detail bits.
func (d *Decoder) containerBits(from bool) uint32 {
	var none, obj, list uint32 = token.StructureToNone, token.StructureToObj, token.StructureToList
	if from {
		none, obj, list = token.StructureFromNone, token.StructureFromObj, token.StructureFromList
	}
	if len(d.stack) == 0 {
		return none
	}
	if d.stack[len(d.stack)-1] == '{' {
		return obj
	}
	return list
}

func (d *Decoder) push(dst *buffer.Tokens, src *buffer.Source, b byte) (ctrl, error) {
	if len(d.stack) >= maxDepth {
		return 0, decodeErr("json: unsupported recursion depth")
	}
	vbd := uint32(token.StructurePush) | d.containerBits(true)
	if b == '{' {
		vbd |= token.StructureToObj
	} else {
		vbd |= token.StructureToList
	}
	t := token.Token{Length: 1, VBC: token.Structure, VBD: vbd}
	if !emit(dst, src, t, 1) {
		return ctrlShortWrite, nil
	}
	d.stack = append(d.stack, b)
	if b == '{' {
		d.state = stateName
	} else {
		d.state = stateValue
	}
	d.closerOK = true
	return ctrlLoop, nil
}

func (d *Decoder) pop(dst *buffer.Tokens, src *buffer.Source, b byte) (ctrl, error) {
	vbd := uint32(token.StructurePop)
	if b == '}' {
		vbd |= token.StructureFromObj
	} else {
		vbd |= token.StructureFromList
	}
	popped := d.stack[:len(d.stack)-1]
	if len(popped) == 0 {
		vbd |= token.StructureToNone
	} else if popped[len(popped)-1] == '{' {
		vbd |= token.StructureToObj
	} else {
		vbd |= token.StructureToList
	}
	t := token.Token{Length: 1, VBC: token.Structure, VBD: vbd}
	if !emit(dst, src, t, 1) {
		return ctrlShortWrite, nil
	}
	d.stack = popped
	d.finishValue()
	return ctrlLoop, nil
}

// finishValue advances the grammar state after a complete value.
func (d *Decoder) finishValue() {
	if len(d.stack) == 0 {
		d.state = stateTrailer
	} else {
		d.state = stateComma
	}
	d.closerOK = false
}
