package simulated

import (
	"errors"
	"time"
)

// The wire format is re-implemented here on raw uint32 frames, on purpose:
// the simulator answering from an independent codec is what makes the
// loopback and exchange tests meaningful.
const (
	halfBit = 500 * time.Microsecond
	bit     = 2 * halfBit

	// start bit + 32 data bits + stop bit
	burstBits = 34
)

var (
	ErrNoBurst    = errors.New("simulated: no request burst on the line")
	ErrShortBurst = errors.New("simulated: request burst truncated")
	ErrBadStop    = errors.New("simulated: stop bit not active")
)

// DecodeBurst reconstructs the 32-bit frame from transitions recorded on
// the transmit line, where low is the active state. It samples each bit a
// quarter period into its first half, which is level with the Manchester
// encoding regardless of neighbouring bits.
func DecodeBurst(edges []Edge) (uint32, error) {
	// Skip to the start bit: the first drive to active.
	for len(edges) > 0 && edges[0].High {
		edges = edges[1:]
	}
	if len(edges) == 0 {
		return 0, ErrNoBurst
	}
	t0 := edges[0].At
	last := edges[len(edges)-1].At
	if last.Sub(t0) < (burstBits-1)*bit {
		return 0, ErrShortBurst
	}

	activeAt := func(t time.Time) bool {
		level := true // line idles high before the burst
		for _, e := range edges {
			if e.At.After(t) {
				break
			}
			level = e.High
		}
		return !level
	}

	var frame uint32
	for i := 0; i < 32; i++ {
		frame <<= 1
		if activeAt(t0.Add(time.Duration(i+1)*bit + bit/4)) {
			frame |= 1
		}
	}
	if !activeAt(t0.Add(33*bit + bit/4)) {
		return 0, ErrBadStop
	}
	return frame, nil
}

// BurstEdges renders a frame as the receive-line transitions of a full
// response burst starting at start, high being the active state. The
// returned schedule includes only actual level changes; edges the decoder
// must ignore (the mid-bit transitions) arise naturally from it.
func BurstEdges(frame uint32, start time.Time) []Edge {
	var halves [2 * burstBits]bool
	halves[0] = true // start bit
	for i := 0; i < 32; i++ {
		one := frame>>(31-i)&1 == 1
		halves[2+2*i] = one
		halves[3+2*i] = !one
	}
	halves[66] = true // stop bit

	var edges []Edge
	level := false // line idles low
	for i, active := range halves {
		if active != level {
			level = active
			edges = append(edges, Edge{At: start.Add(time.Duration(i) * halfBit), High: active})
		}
	}
	if level {
		edges = append(edges, Edge{At: start.Add(2 * burstBits * halfBit), High: false})
	}
	return edges
}

// Boiler is a scripted slave. Respond maps a decoded request frame to a
// response frame; returning false keeps the boiler silent so the master
// runs into its timeout.
type Boiler struct {
	Respond func(request uint32) (response uint32, ok bool)

	// ReplyDelay is how long after being asked the boiler starts its
	// response burst. Defaults to 20ms, well inside the master's window.
	ReplyDelay time.Duration
}

// ServeOnce consumes the request burst recorded on the rig's transmit
// line and, if Respond produces a frame, plays the response back into the
// receive line, advancing the rig clock through every transition.
func (b *Boiler) ServeOnce(r *Rig) error {
	req, err := DecodeBurst(r.Out.TakeEdges())
	if err != nil {
		return err
	}
	if b.Respond == nil {
		return nil
	}
	resp, ok := b.Respond(req)
	if !ok {
		return nil
	}

	delay := b.ReplyDelay
	if delay == 0 {
		delay = 20 * time.Millisecond
	}
	for _, e := range BurstEdges(resp, r.Clock.Now().Add(delay)) {
		r.Clock.AdvanceTo(e.At)
		r.In.SetLevel(e.High)
	}
	return nil
}
