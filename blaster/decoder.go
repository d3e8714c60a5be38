package blaster

import "sync/atomic"

// Nominal burst-to-burst periods in microseconds.
const (
	StartPeriod = 13500
	OnePeriod   = 2250
	ZeroPeriod  = 1120
)

// frameBits is the number of data bits following a start marker.
const frameBits = 32

// Band is an open interval of accepted periods, in microseconds.
type Band struct {
	Min, Max uint32
}

// Contains reports whether Min < delta < Max.
func (b Band) Contains(delta uint32) bool {
	return delta > b.Min && delta < b.Max
}

// tolerance gives the (0.8x, 1.25x) window around a nominal period.
func tolerance(ref uint32) Band {
	return Band{Min: ref * 4 / 5, Max: ref * 5 / 4}
}

var (
	StartBand = tolerance(StartPeriod)
	OneBand   = tolerance(OnePeriod)
	ZeroBand  = tolerance(ZeroPeriod)
)

// Symbol is the meaning of a single burst-to-burst period.
type Symbol uint8

const (
	SymbolNone Symbol = iota
	SymbolStart
	SymbolOne
	SymbolZero
)

func (s Symbol) String() string {
	switch s {
	case SymbolStart:
		return "start"
	case SymbolOne:
		return "one"
	case SymbolZero:
		return "zero"
	}
	return "none"
}

// Classify maps a period onto the symbol whose band contains it.
func Classify(delta uint32) Symbol {
	switch {
	case StartBand.Contains(delta):
		return SymbolStart
	case OneBand.Contains(delta):
		return SymbolOne
	case ZeroBand.Contains(delta):
		return SymbolZero
	}
	return SymbolNone
}

// Decoder reassembles 32-bit frames from receiver edges. It holds at most
// one finished frame; while that frame is waiting to be taken every edge is
// ignored.
//
// HandleEdge is meant to run in interrupt context and Take in the main loop.
// They coordinate through the ready flag only: once ready is set HandleEdge
// touches nothing but the line level, which Take never reads, and Take
// clears ready last.
type Decoder struct {
	// Strict drops a partially received frame when a period fits no band,
	// so only a new start marker resynchronizes. Without it the bad period
	// is skipped and bit counting carries on, which is what deployed
	// receivers do; the checksum then has to catch the shifted frame.
	Strict bool

	last     uint32
	bitcount uint8
	buf      uint32
	high     bool
	ready    atomic.Bool
}

// NewDecoder returns a decoder waiting for a start marker.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.Reset()
	return d
}

// Reset discards any partial or finished frame.
func (d *Decoder) Reset() {
	d.buf = 0
	d.bitcount = 0
	// the line idles high
	d.high = true
	d.ready.Store(false)
}

// HandleEdge implements blasterrx.EdgeHandler.
func (d *Decoder) HandleEdge(level bool, micros uint32) {
	if level == d.high {
		// not our pin, or a repeated interrupt
		return
	}
	// The level is tracked even while the slot is full, otherwise the
	// first burst after the frame is taken looks like a repeat and the
	// start marker following it is missed.
	d.high = level
	if d.ready.Load() {
		// don't read more until the slot is emptied
		return
	}
	if level {
		// end of a burst; the signal is inverted so only falling edges count
		return
	}

	delta := micros - d.last
	d.last = micros

	switch Classify(delta) {
	case SymbolStart:
		d.bitcount = 1
		d.buf = 0
		return
	case SymbolOne:
		if d.bitcount == 0 {
			return
		}
		d.buf = d.buf>>1 | 1<<31
	case SymbolZero:
		if d.bitcount == 0 {
			return
		}
		d.buf >>= 1
	default:
		if d.Strict {
			d.bitcount = 0
		}
		return
	}

	d.bitcount++
	if d.bitcount == frameBits+1 {
		d.ready.Store(true)
	}
}

// Ready reports whether a finished frame is waiting.
func (d *Decoder) Ready() bool {
	return d.ready.Load()
}

// Take returns the waiting frame and frees the slot. ok is false when no
// frame is waiting.
func (d *Decoder) Take() (raw uint32, ok bool) {
	if !d.ready.Load() {
		return 0, false
	}
	raw = d.buf
	d.buf = 0
	d.bitcount = 0
	d.ready.Store(false)
	return raw, true
}
