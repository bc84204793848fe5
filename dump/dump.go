// Package dump serializes decoded tokens in the debug format, either as
// fixed 16-byte big-endian records or as human-readable lines. Tokens
// carrying no semantic value (plain whitespace and punctuation filler) are
// elided unless all-tokens mode is on; elided tokens still advance the
// caller's position.
package dump

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/c53mike/wuffs/token"
)

// Padded category names for the human-readable form. Indexed by the low
// three bits of the base category.
var vbcNames = [8]string{
	"0:Filler..........",
	"1:Structure.......",
	"2:String..........",
	"3:UnicodeCodePoint",
	"4:Literal.........",
	"5:Number..........",
	"6:Reserved........",
	"7:Reserved........",
}

// Options selects the output form.
type Options struct {
	// AllTokens emits every token, including whitespace and punctuation
	// filler.
	AllTokens bool

	// HumanReadable emits one text line per token instead of a 16-byte
	// binary record.
	HumanReadable bool
}

// Writer renders tokens to an underlying stream.
type Writer struct {
	w    io.Writer
	opts Options
}

func NewWriter(w io.Writer, opts Options) *Writer {
	return &Writer{w: w, opts: opts}
}

// WriteToken renders one token at the given cumulative byte position.
// Valueless tokens are skipped unless all-tokens mode is on.
func (d *Writer) WriteToken(pos uint32, t token.Token) error {
	if !d.opts.AllTokens && !t.HasValue() {
		return nil
	}
	if d.opts.HumanReadable {
		return d.writeHuman(pos, t)
	}
	return d.writeRecord(pos, t)
}

func (d *Writer) writeRecord(pos uint32, t token.Token) error {
	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0x0:], pos)
	binary.BigEndian.PutUint16(buf[0x4:], t.Length)
	if t.LinkPrev {
		buf[0x6] = 1
	}
	if t.LinkNext {
		buf[0x7] = 1
	}
	binary.BigEndian.PutUint32(buf[0x8:], t.VMajor)
	if t.VMajor != 0 {
		binary.BigEndian.PutUint32(buf[0xC:], t.VMinor)
	} else {
		buf[0xC] = uint8(t.VBC)
		buf[0xD] = uint8(t.VBD >> 16)
		buf[0xE] = uint8(t.VBD >> 8)
		buf[0xF] = uint8(t.VBD)
	}
	_, err := d.w.Write(buf[:])
	return err
}

func (d *Writer) writeHuman(pos uint32, t token.Token) error {
	lp, ln := 0, 0
	if t.LinkPrev {
		lp = 1
	}
	if t.LinkNext {
		ln = 1
	}
	if t.VMajor != 0 {
		tag := token.Base38Tag(t.VMajor)
		_, err := fmt.Fprintf(d.w,
			"pos=0x%08X  len=0x%04X  link=0b%d%d  vmajor=0x%06X:%c%c%c%c  vminor=0x%06X\n",
			pos, t.Length, lp, ln, t.VMajor, tag[0], tag[1], tag[2], tag[3], t.VMinor)
		return err
	}
	_, err := fmt.Fprintf(d.w,
		"pos=0x%08X  len=0x%04X  link=0b%d%d  vbc=%s.  vbd=0x%06X\n",
		pos, t.Length, lp, ln, vbcNames[t.VBC&7], t.VBD)
	return err
}
