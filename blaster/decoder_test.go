package blaster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTolerance(t *testing.T) {
	assert.Equal(t, Band{Min: 10800, Max: 16875}, StartBand)
	assert.Equal(t, Band{Min: 1800, Max: 2812}, OneBand)
	assert.Equal(t, Band{Min: 896, Max: 1400}, ZeroBand)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		delta uint32
		want  Symbol
	}{
		{0, SymbolNone},
		{896, SymbolNone},
		{897, SymbolZero},
		{1120, SymbolZero},
		{1399, SymbolZero},
		{1400, SymbolNone},
		{1600, SymbolNone},
		{1800, SymbolNone},
		{1801, SymbolOne},
		{2250, SymbolOne},
		{2811, SymbolOne},
		{2812, SymbolNone},
		{9000, SymbolNone},
		{10801, SymbolStart},
		{13500, SymbolStart},
		{16874, SymbolStart},
		{16875, SymbolNone},
		{0xFFFFFFFF, SymbolNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.delta), "delta %d", tt.delta)
	}
}

func TestDecodeFrame(t *testing.T) {
	words := []uint32{0x1C00A952, 0x00000000, 0xFFFFFFFF, 0x80000001, 0x12345678}
	for _, w := range words {
		d := NewDecoder()
		feed(d, frameEdges(w, 100000))

		raw, ok := d.Take()
		require.True(t, ok, "%#08x", w)
		assert.Equal(t, w, raw)
	}
}

func TestDecodeFrameAcrossCounterWrap(t *testing.T) {
	d := NewDecoder()
	feed(d, frameEdges(0x1C00A952, 0xFFFFFFFF-30000))

	raw, ok := d.Take()
	require.True(t, ok)
	assert.Equal(t, uint32(0x1C00A952), raw)
}

func TestDecodeWithJitter(t *testing.T) {
	// every period at the edge of its band
	periods := []uint32{16000}
	w := uint32(0xA5A5F00F)
	for i := 0; i < frameBits; i++ {
		if w>>i&1 == 1 {
			if i%2 == 0 {
				periods = append(periods, 1810)
			} else {
				periods = append(periods, 2800)
			}
		} else {
			if i%2 == 0 {
				periods = append(periods, 900)
			} else {
				periods = append(periods, 1390)
			}
		}
	}

	d := NewDecoder()
	feed(d, periodEdges(100000, periods...))

	raw, ok := d.Take()
	require.True(t, ok)
	assert.Equal(t, w, raw)
}

func TestNothingBeforeFrameComplete(t *testing.T) {
	d := NewDecoder()
	edges := frameEdges(0x1C00A952, 100000)
	// stop before the burst closing the last bit cell
	feed(d, edges[:len(edges)-2])

	assert.False(t, d.Ready())
	_, ok := d.Take()
	assert.False(t, ok)

	feed(d, edges[len(edges)-2:])
	assert.True(t, d.Ready())
}

func TestNoiseBeforeStartIsIgnored(t *testing.T) {
	d := NewDecoder()
	feed(d, periodEdges(100000, 1600, 1600, 2250, 1120, 5000, 1600))

	assert.Equal(t, uint8(0), d.bitcount)
	assert.Equal(t, uint32(0), d.buf)
	assert.False(t, d.Ready())
}

func TestStartMidFrameRestarts(t *testing.T) {
	d := NewDecoder()

	// a start and ten ones, then a fresh frame
	partial := periodEdges(100000, StartPeriod,
		OnePeriod, OnePeriod, OnePeriod, OnePeriod, OnePeriod,
		OnePeriod, OnePeriod, OnePeriod, OnePeriod, OnePeriod)
	feed(d, partial)
	require.Equal(t, uint8(11), d.bitcount)

	feed(d, frameEdges(0x00000000, end(partial)+20000))

	raw, ok := d.Take()
	require.True(t, ok)
	assert.Equal(t, uint32(0), raw)
}

func TestRepeatedLevelIsIgnored(t *testing.T) {
	d := NewDecoder()
	var edges []edge
	for _, e := range frameEdges(0x1C00A952, 100000) {
		// every interrupt seen twice, e.g. a neighbour pin on the same vector
		edges = append(edges, e, edge{e.level, e.micros + 5})
	}
	feed(d, edges)

	raw, ok := d.Take()
	require.True(t, ok)
	assert.Equal(t, uint32(0x1C00A952), raw)
}

func TestRisingEdgesDoNotCount(t *testing.T) {
	d := NewDecoder()
	// rising edges 13.5ms apart but falling edges never a start apart
	d.HandleEdge(false, 100000)
	d.HandleEdge(true, 100100)
	d.HandleEdge(false, 110000)
	d.HandleEdge(true, 113600)
	d.HandleEdge(false, 140000)

	assert.Equal(t, uint8(0), d.bitcount)
}

func TestFinishedFrameIsNotOverwritten(t *testing.T) {
	d := NewDecoder()
	first := frameEdges(0x1C00A952, 100000)
	feed(d, first)
	require.True(t, d.Ready())

	feed(d, frameEdges(0x823FFFFF, end(first)+20000))

	raw, ok := d.Take()
	require.True(t, ok)
	assert.Equal(t, uint32(0x1C00A952), raw)
}

func TestTakeFreesSlot(t *testing.T) {
	d := NewDecoder()
	first := frameEdges(0x1C00A952, 100000)
	feed(d, first)

	_, ok := d.Take()
	require.True(t, ok)
	_, ok = d.Take()
	assert.False(t, ok)

	feed(d, frameEdges(0x823FFFFF, end(first)+20000))
	raw, ok := d.Take()
	require.True(t, ok)
	assert.Equal(t, uint32(0x823FFFFF), raw)
}

func TestDesyncMidFrame(t *testing.T) {
	w := uint32(0x1C00A952)
	edges := frameEdges(w, 100000)

	// A stray burst 600us into bit cell 4 (a one) splits it into two
	// periods that fit no band, so that bit is lost. One more zero-shaped
	// period after the frame makes up the count.
	const cell4 = 2 + 2*5
	var glitched []edge
	glitched = append(glitched, edges[:cell4]...)
	glitched = burst(glitched, edges[cell4-2].micros+600)
	glitched = append(glitched, edges[cell4:]...)
	glitched = burst(glitched, edges[len(edges)-2].micros+ZeroPeriod)

	t.Run("lenient", func(t *testing.T) {
		d := NewDecoder()
		feed(d, glitched)
		raw, ok := d.Take()
		require.True(t, ok)
		assert.Equal(t, uint32(0x0E0054A2), raw)
		assert.False(t, Valid(raw))
	})

	t.Run("strict", func(t *testing.T) {
		d := NewDecoder()
		d.Strict = true
		feed(d, glitched)
		assert.False(t, d.Ready())
		assert.Equal(t, uint8(0), d.bitcount)
	})
}

func TestResetDropsPartialFrame(t *testing.T) {
	d := NewDecoder()
	edges := frameEdges(0x1C00A952, 100000)
	feed(d, edges[:20])
	require.NotZero(t, d.bitcount)

	d.Reset()
	assert.Equal(t, uint8(0), d.bitcount)
	assert.Equal(t, uint32(0), d.buf)

	// the remainder alone is not a frame
	feed(d, edges[20:])
	assert.False(t, d.Ready())
}
