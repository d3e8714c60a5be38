package capture

import (
	"sync"

	"github.com/sparques/blasterrx"
)

// Feed plays a capture into whatever handler is armed on it, standing in
// for the pin interrupt. It implements blasterrx.Line.
type Feed struct {
	r *Reader

	mu sync.Mutex
	h  blasterrx.EdgeHandler
}

func NewFeed(r *Reader) *Feed {
	return &Feed{r: r}
}

func (f *Feed) Arm(h blasterrx.EdgeHandler) error {
	f.mu.Lock()
	f.h = h
	f.mu.Unlock()
	return nil
}

func (f *Feed) Disarm() error {
	f.mu.Lock()
	f.h = nil
	f.mu.Unlock()
	return nil
}

// Step reads one edge and delivers it if the feed is armed. Edges read
// while disarmed are consumed and dropped, like transitions on a pin with
// its interrupt masked.
func (f *Feed) Step() (Edge, error) {
	e, err := f.r.Next()
	if err != nil {
		return Edge{}, err
	}

	f.mu.Lock()
	h := f.h
	f.mu.Unlock()
	if h != nil {
		h.HandleEdge(e.Level, e.Micros)
	}
	return e, nil
}
