package blasterrx

// EdgeHandler consumes raw level transitions of an IR receive line.
// level is the pin level after the transition and micros a free running
// microsecond counter that is allowed to wrap.
//
// HandleEdge is called from interrupt context on real hardware, so
// implementations must not block or allocate.
type EdgeHandler interface {
	HandleEdge(level bool, micros uint32)
}

// EdgeHandlerFunc adapts a plain func to an EdgeHandler.
type EdgeHandlerFunc func(level bool, micros uint32)

// HandleEdge implements EdgeHandler.
func (f EdgeHandlerFunc) HandleEdge(level bool, micros uint32) {
	f(level, micros)
}

// Line is an edge source that can be switched on and off. Arm starts
// delivering edges to h; Disarm stops delivery. Both must be safe to call
// repeatedly.
type Line interface {
	Arm(h EdgeHandler) error
	Disarm() error
}

type multiEdgeHandler []EdgeHandler

func (meh multiEdgeHandler) HandleEdge(level bool, micros uint32) {
	for i := range meh {
		meh[i].HandleEdge(level, micros)
	}
}

// MultiEdgeHandler accepts a list of EdgeHandlers and returns an object
// that also implements EdgeHandler. Every edge is passed to each of them in
// order. This lets a decoder and a recorder listen to the same line, e.g.:
//
//	rec := &deltaRecorder{}
//	line.Arm(blasterrx.MultiEdgeHandler(recv, rec))
func MultiEdgeHandler(h ...EdgeHandler) EdgeHandler {
	return multiEdgeHandler(h)
}
