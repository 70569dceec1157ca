package simulated

import (
	"sync"
	"time"
)

// Edge records one line transition and the level the line settled at.
type Edge struct {
	At   time.Time
	High bool
}

// OutputPin records every level change the transceiver drives, stamped
// with the simulated clock. The line starts high: the transmit side of
// an OpenTherm interface idles high and pulls low for the active state.
type OutputPin struct {
	clk *Clock

	mu    sync.Mutex
	level bool
	edges []Edge
}

func NewOutputPin(clk *Clock) *OutputPin {
	return &OutputPin{clk: clk, level: true}
}

func (p *OutputPin) Set(high bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if high == p.level {
		return
	}
	p.level = high
	p.edges = append(p.edges, Edge{At: p.clk.Now(), High: high})
}

// Level reads the current line level.
func (p *OutputPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// TakeEdges returns the recorded transitions and clears the record.
func (p *OutputPin) TakeEdges() []Edge {
	p.mu.Lock()
	defer p.mu.Unlock()
	edges := p.edges
	p.edges = nil
	return edges
}

// InputPin is a settable receive line. Changing the level fires the
// attached edge handler, just as the hardware interrupt would. The line
// starts low: the receive side idles low and reads high when active.
type InputPin struct {
	mu      sync.Mutex
	level   bool
	handler func()
}

func NewInputPin() *InputPin {
	return &InputPin{}
}

func (p *InputPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *InputPin) SetInterrupt(fn func()) error {
	p.mu.Lock()
	p.handler = fn
	p.mu.Unlock()
	return nil
}

func (p *InputPin) ClearInterrupt() error {
	p.mu.Lock()
	p.handler = nil
	p.mu.Unlock()
	return nil
}

// SetLevel drives the line. A level change invokes the edge handler with
// the new level already readable, matching real edge-interrupt delivery.
func (p *InputPin) SetLevel(high bool) {
	p.mu.Lock()
	if high == p.level {
		p.mu.Unlock()
		return
	}
	p.level = high
	fn := p.handler
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Guard satisfies hal.Guard with a plain mutex. On the host there is no
// interrupt to mask; serializing the sections is enough.
type Guard struct {
	mu sync.Mutex
}

func NewGuard() *Guard {
	return &Guard{}
}

func (g *Guard) Critical(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}
