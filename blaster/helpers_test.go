package blaster

import "github.com/sparques/blasterrx"

type edge struct {
	level  bool
	micros uint32
}

const markLen = 560

// burst appends the falling and rising edge of one IR burst starting at t.
func burst(edges []edge, t uint32) []edge {
	return append(edges, edge{false, t}, edge{true, t + markLen})
}

// frameEdges renders word as the receiver pin would see it: a leading
// burst, a start period, then 32 bit cells least significant bit first,
// closed by a final burst. Time arithmetic wraps like the hardware counter.
func frameEdges(word uint32, t0 uint32) []edge {
	edges := burst(nil, t0)
	t := t0 + StartPeriod
	for i := 0; i < frameBits; i++ {
		edges = burst(edges, t)
		if word>>i&1 == 1 {
			t += OnePeriod
		} else {
			t += ZeroPeriod
		}
	}
	return burst(edges, t)
}

// periodEdges emits one burst per period, starting with a burst at t0.
func periodEdges(t0 uint32, periods ...uint32) []edge {
	edges := burst(nil, t0)
	t := t0
	for _, p := range periods {
		t += p
		edges = burst(edges, t)
	}
	return edges
}

func feed(h blasterrx.EdgeHandler, edges []edge) {
	for _, e := range edges {
		h.HandleEdge(e.level, e.micros)
	}
}

// end returns the timestamp of the last edge.
func end(edges []edge) uint32 {
	return edges[len(edges)-1].micros
}

type fields struct {
	Channel     uint8
	Team        Team
	Action      Action
	ActionParam uint8
	PlayerID    uint16
}

func fieldsOf(p Packet) fields {
	return fields{
		Channel:     p.Channel(),
		Team:        p.Team(),
		Action:      p.Action(),
		ActionParam: p.ActionParam(),
		PlayerID:    p.PlayerID(),
	}
}

func (f fields) packet() Packet {
	return Packet(0).
		WithChannel(f.Channel).
		WithTeam(f.Team).
		WithAction(f.Action).
		WithActionParam(f.ActionParam).
		WithPlayerID(f.PlayerID)
}
