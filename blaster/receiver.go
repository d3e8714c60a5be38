package blaster

import (
	"fmt"
	"sync/atomic"

	"github.com/sparques/blasterrx"
)

// Receiver owns the decoder for one receive line and hands out packets
// that passed the checksum.
type Receiver struct {
	line  blasterrx.Line
	dec   Decoder
	armed atomic.Bool

	accepted atomic.Uint32
	rejected atomic.Uint32
}

// Stats counts the frames a Receiver has finished with.
type Stats struct {
	// Accepted frames were returned by TryRead.
	Accepted uint32
	// Rejected frames were complete but failed the checksum.
	Rejected uint32
}

// NewReceiver returns a disabled receiver for line. line may be nil, in
// which case edges have to be fed through HandleEdge by the caller.
func NewReceiver(line blasterrx.Line) *Receiver {
	r := &Receiver{line: line}
	r.dec.Reset()
	return r
}

// SetStrict switches the decoder between dropping and tolerating periods
// that fit no band mid-frame. See Decoder.Strict. Call it while disabled.
func (r *Receiver) SetStrict(strict bool) {
	r.dec.Strict = strict
}

// Enable clears any decoder state and starts listening.
func (r *Receiver) Enable() error {
	if r.armed.Load() {
		return nil
	}
	r.dec.Reset()
	r.armed.Store(true)
	if r.line == nil {
		return nil
	}
	if err := r.line.Arm(r); err != nil {
		r.armed.Store(false)
		return fmt.Errorf("arm receive line: %w", err)
	}
	return nil
}

// Disable stops listening and throws away a frame in progress.
func (r *Receiver) Disable() error {
	if !r.armed.Load() {
		return nil
	}
	r.armed.Store(false)
	var err error
	if r.line != nil {
		if err = r.line.Disarm(); err != nil {
			err = fmt.Errorf("disarm receive line: %w", err)
		}
	}
	r.dec.Reset()
	return err
}

// Enabled reports whether the receiver is listening.
func (r *Receiver) Enabled() bool {
	return r.armed.Load()
}

// HandleEdge implements blasterrx.EdgeHandler. Edges arriving while the
// receiver is disabled are dropped.
func (r *Receiver) HandleEdge(level bool, micros uint32) {
	if !r.armed.Load() {
		return
	}
	r.dec.HandleEdge(level, micros)
}

// TryRead returns the waiting packet, if any, and frees the slot for the
// next one. A frame that fails the checksum is dropped and reported as
// nothing received. TryRead never blocks.
//
// The returned packet has the checksum folded back out, so its CRC field
// reads zero.
func (r *Receiver) TryRead() (Packet, bool) {
	raw, ok := r.dec.Take()
	if !ok {
		return 0, false
	}
	if !Valid(raw) {
		r.rejected.Add(1)
		return 0, false
	}
	r.accepted.Add(1)
	return Packet(Embed(raw)), true
}

// Stats returns the frame counters.
func (r *Receiver) Stats() Stats {
	return Stats{
		Accepted: r.accepted.Load(),
		Rejected: r.rejected.Load(),
	}
}
