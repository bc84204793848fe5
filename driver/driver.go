// Package driver pumps bytes from a bounded source window through a
// streaming token decoder and drains the produced tokens into a sink,
// suspending and resuming the decoder as either buffer runs dry or full.
package driver

import (
	"github.com/c53mike/wuffs/buffer"
	"github.com/c53mike/wuffs/errs"
	"github.com/c53mike/wuffs/log"
	"github.com/c53mike/wuffs/token"
)

// Status is a decoder suspension outcome. Together with a non-nil error
// (the terminal decode-failure outcome) it forms the decoder's four-state
// contract.
type Status uint8

const (
	// StatusOK means the entire input has been tokenized; terminal success.
	StatusOK Status = iota

	// StatusShortRead means the decoder cannot produce further tokens
	// without more source bytes.
	StatusShortRead

	// StatusShortWrite means the token buffer has no free capacity; the
	// caller must drain and compact it.
	StatusShortWrite
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusShortRead:
		return "short read"
	case StatusShortWrite:
		return "short write"
	default:
		return "unknown"
	}
}

// Decoder is the opaque tokenizing capability the driver loops over. It
// consumes bytes from the source window, appends zero or more tokens into
// the token buffer's free region, and reports how it stopped. A non-nil
// error is a terminal decode failure. Implementations are configured
// before the first call and never reconfigured.
type Decoder interface {
	DecodeTokens(dst *buffer.Tokens, src *buffer.Source) (Status, error)
}

// TokenWriter receives every drained token together with the cumulative
// position at which it starts. Elision is the writer's concern; the driver
// hands it everything.
type TokenWriter interface {
	WriteToken(pos uint32, t token.Token) error
}

// DefaultMaxPosition is the largest cumulative position this tool can
// represent. A position exactly equal to it is accepted; the first token
// carrying the count beyond it fails the run.
const DefaultMaxPosition = 0xFFFFFFFF

// Opts configures a Driver.
type Opts struct {
	Decoder Decoder
	Source  *buffer.Source
	Tokens  *buffer.Tokens
	Out     TokenWriter

	// MaxPosition overrides DefaultMaxPosition when nonzero. Positions
	// strictly greater than the bound terminate the run with an overflow
	// error.
	MaxPosition uint64
}

// Driver owns all mutable state for one run: both buffers, the decoder and
// the cumulative position counter. It is not safe for concurrent use and
// is not meant to be reused after Run returns.
type Driver struct {
	dec    Decoder
	src    *buffer.Source
	toks   *buffer.Tokens
	out    TokenWriter
	maxPos uint64
	pos    uint64
	lgr    log.Logger
}

func New(opts *Opts) *Driver {
	maxPos := opts.MaxPosition
	if maxPos == 0 {
		maxPos = DefaultMaxPosition
	}
	return &Driver{
		dec:    opts.Decoder,
		src:    opts.Source,
		toks:   opts.Tokens,
		out:    opts.Out,
		maxPos: maxPos,
		lgr:    log.WithModule("driver"),
	}
}

// Position returns the cumulative number of input bytes covered by drained
// tokens, whether or not they were emitted.
func (d *Driver) Position() uint64 {
	return d.pos
}

// Run executes the suspend/resume loop to completion. It returns nil once
// the decoder reports terminal success, or the first error of any kind;
// there is no retry and no partial recovery.
func (d *Driver) Run() error {
	for {
		status, decErr := d.dec.DecodeTokens(d.toks, d.src)

		// Whatever the outcome, every produced token is drained first so
		// that compaction never discards unread records and the position
		// count stays exact.
		if err := d.drain(); err != nil {
			return err
		}
		if decErr != nil {
			return decErr
		}

		switch status {
		case StatusOK:
			d.lgr.Debug("decode complete", "position", d.pos)
			return nil
		case StatusShortRead:
			d.lgr.Trace("short read, refilling source", "position", d.pos)
			if err := d.src.Refill(); err != nil {
				return err
			}
		case StatusShortWrite:
			d.lgr.Trace("short write, compacting token buffer", "position", d.pos)
			if err := d.toks.Compact(); err != nil {
				return err
			}
		default:
			return errs.Newf(errs.KindInternal, "decoder returned unknown status %d", status)
		}
	}
}

func (d *Driver) drain() error {
	for {
		t, ok := d.toks.Next()
		if !ok {
			return nil
		}
		if err := d.out.WriteToken(uint32(d.pos), t); err != nil {
			return err
		}
		d.pos += uint64(t.Length)
		if d.pos > d.maxPos {
			return errs.New(errs.KindOverflow, "input is too long")
		}
	}
}
