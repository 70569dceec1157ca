package simulated

// Rig bundles one complete simulated wiring harness: a clock shared by
// both pins and the code under test, the receive line, the transmit line
// and a guard.
type Rig struct {
	Clock *Clock
	In    *InputPin
	Out   *OutputPin
	Guard *Guard
}

func NewRig() *Rig {
	clk := NewClock()
	return &Rig{
		Clock: clk,
		In:    NewInputPin(),
		Out:   NewOutputPin(clk),
		Guard: NewGuard(),
	}
}
