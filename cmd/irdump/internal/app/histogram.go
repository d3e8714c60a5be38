package app

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sparques/blasterrx/blaster"
)

// maxPlottedPeriod keeps idle gaps between shots off the histogram.
const maxPlottedPeriod = 20000

var errNoPeriods = errors.New("no burst periods recorded")

// periodRecorder collects the burst-to-burst periods the decoder sees. It
// filters edges the same way the decoder does, so it records exactly the
// deltas that get classified.
type periodRecorder struct {
	mu      sync.Mutex
	high    bool
	last    uint32
	started bool
	periods []float64
	counts  [blaster.SymbolZero + 1]int
}

func newPeriodRecorder() *periodRecorder {
	return &periodRecorder{high: true}
}

func (r *periodRecorder) HandleEdge(level bool, micros uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if level == r.high {
		return
	}
	r.high = level
	if level {
		return
	}
	delta := micros - r.last
	r.last = micros
	if !r.started {
		// nothing to measure against yet
		r.started = true
		return
	}

	r.counts[blaster.Classify(delta)]++
	if delta < maxPlottedPeriod {
		r.periods = append(r.periods, float64(delta))
	}
}

// Counts returns how many periods fell into each symbol band.
func (r *periodRecorder) Counts() map[blaster.Symbol]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := make(map[blaster.Symbol]int, len(r.counts))
	for s, n := range r.counts {
		m[blaster.Symbol(s)] = n
	}
	return m
}

// WriteHistogram plots the recorded periods with the decoder's tolerance
// bands marked. The image format follows the file extension.
func (r *periodRecorder) WriteHistogram(path string) error {
	r.mu.Lock()
	vals := make(plotter.Values, len(r.periods))
	copy(vals, r.periods)
	r.mu.Unlock()

	if len(vals) == 0 {
		return errNoPeriods
	}

	p := plot.New()
	p.Title.Text = "Burst-to-burst periods"
	p.X.Label.Text = "period (µs)"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(vals, 200)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	p.Add(h)

	var top float64
	for _, b := range h.Bins {
		if b.Weight > top {
			top = b.Weight
		}
	}

	bands := []struct {
		band blaster.Band
		c    color.Color
	}{
		{blaster.ZeroBand, color.RGBA{B: 200, A: 255}},
		{blaster.OneBand, color.RGBA{G: 160, A: 255}},
		{blaster.StartBand, color.RGBA{R: 200, A: 255}},
	}
	for _, b := range bands {
		for _, x := range []uint32{b.band.Min, b.band.Max} {
			l, err := plotter.NewLine(plotter.XYs{{X: float64(x), Y: 0}, {X: float64(x), Y: top}})
			if err != nil {
				return fmt.Errorf("build band marker: %w", err)
			}
			l.Color = b.c
			l.Width = vg.Points(1)
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(l)
		}
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save histogram %s: %w", path, err)
	}
	return nil
}
