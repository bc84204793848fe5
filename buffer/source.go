// Package buffer provides the two bounded, reusable buffers the driver
// loop pumps: a byte window over the input stream and a ring of produced
// tokens. Both are allocated once per run and refilled or compacted in
// place, never reallocated.
package buffer

import (
	"io"

	"github.com/c53mike/wuffs/errs"
	"github.com/c53mike/wuffs/token"
)

// MinSourceCapacity is the smallest usable source window. The decoder
// scans escape sequences of up to 12 bytes as one unit, so they must fit
// contiguously after compaction.
const MinSourceCapacity = 16

// Source is a bounded window over an input stream. Bytes in [ri, wi) have
// been read from the stream but not yet consumed by the decoder; they are
// preserved contiguously across compaction.
type Source struct {
	r      io.Reader
	data   []byte
	ri, wi int
	closed bool
}

func NewSource(r io.Reader, capacity int) (*Source, error) {
	if capacity < MinSourceCapacity {
		return nil, errs.Newf(errs.KindArgument, "source buffer capacity %d is below the minimum %d", capacity, MinSourceCapacity)
	}
	return &Source{r: r, data: make([]byte, capacity)}, nil
}

// Window returns the unconsumed bytes. The slice is valid until the next
// Refill.
func (s *Source) Window() []byte {
	return s.data[s.ri:s.wi]
}

// Consume marks the first n bytes of the window as consumed.
func (s *Source) Consume(n int) {
	s.ri += n
}

// Closed reports whether end-of-input has been observed. Once set it is
// never cleared.
func (s *Source) Closed() bool {
	return s.closed
}

// Full reports whether the unconsumed window spans the entire storage, in
// which case no refill can make progress.
func (s *Source) Full() bool {
	return s.wi-s.ri == len(s.data)
}

// Cap returns the fixed storage capacity.
func (s *Source) Cap() int {
	return len(s.data)
}

// Refill compacts the unconsumed bytes to the start of storage and issues
// one read into the freed capacity. Requesting a refill on a closed source
// or on a buffer with no free capacity after compaction is a contract
// violation by the caller, reported as an internal error.
func (s *Source) Refill() error {
	if s.closed {
		return errs.New(errs.KindInternal, "read requested on a closed source")
	}
	s.compact()
	if s.wi >= len(s.data) {
		return errs.New(errs.KindInternal, "source buffer is full after compaction")
	}
	n, err := s.r.Read(s.data[s.wi:])
	s.wi += n
	if err == io.EOF {
		s.closed = true
		return nil
	}
	if err != nil {
		return errs.Wrap(errs.KindRead, err, "read error")
	}
	if n == 0 {
		return errs.New(errs.KindRead, "read error: no progress from source")
	}
	return nil
}

func (s *Source) compact() {
	if s.ri == 0 {
		return
	}
	n := copy(s.data, s.data[s.ri:s.wi])
	s.ri = 0
	s.wi = n
}

// Tokens is a bounded buffer of produced token records. The decoder
// appends at wi; the driver drains from ri. Every record in [ri, wi) must
// be drained, in order, before compaction.
type Tokens struct {
	data   []token.Token
	ri, wi int
}

func NewTokens(capacity int) (*Tokens, error) {
	if capacity < 1 {
		return nil, errs.Newf(errs.KindArgument, "token buffer capacity %d is below the minimum 1", capacity)
	}
	return &Tokens{data: make([]token.Token, capacity)}, nil
}

// Append stores t in the free region and reports whether it fit. A false
// return is the decoder's cue to suspend with a short write.
func (b *Tokens) Append(t token.Token) bool {
	if b.wi >= len(b.data) {
		return false
	}
	b.data[b.wi] = t
	b.wi++
	return true
}

// Next yields the oldest undrained record, in production order.
func (b *Tokens) Next() (token.Token, bool) {
	if b.ri >= b.wi {
		return token.Token{}, false
	}
	t := b.data[b.ri]
	b.ri++
	return t, true
}

// Pending returns the number of undrained records.
func (b *Tokens) Pending() int {
	return b.wi - b.ri
}

// Compact resets both cursors, discarding the already-drained contents.
// Compacting while undrained records remain would silently lose tokens,
// so it is reported as an internal error.
func (b *Tokens) Compact() error {
	if b.ri < b.wi {
		return errs.Newf(errs.KindInternal, "token buffer compacted with %d undrained tokens", b.wi-b.ri)
	}
	b.ri = 0
	b.wi = 0
	return nil
}
