package opentherm

// HandleEdge is the receive state machine. Wire it to the input pin's
// edge interrupt; Begin does so through hal.InputPin.SetInterrupt. It is
// invoked once per line transition, mutates only session state and never
// blocks, allocates or calls the response handler.
//
// Bit recovery works by edge spacing: the encoding's own mid-bit
// transition always lands within 500us of the previous significant edge,
// while the boundary between two bit periods lands a full period away.
// Edges closer than edgeGapThreshold are therefore discarded, and each
// surviving edge samples one bit at the centre of its period. The line
// level at that moment is the second half of the bit, so the bit value is
// its complement.
func (t *Transceiver) HandleEdge() {
	now := t.clk.Now()
	switch t.status {
	case StatusResponseWaiting:
		// A response must open with an active start bit.
		if t.in.Get() {
			t.status = StatusResponseStartBit
		} else {
			t.status = StatusResponseInvalid
		}
		t.responseTimestamp = now

	case StatusResponseStartBit:
		if now.Sub(t.responseTimestamp) < edgeGapThreshold && !t.in.Get() {
			t.status = StatusResponseReceiving
			t.responseBitIndex = 0
		} else {
			t.status = StatusResponseInvalid
		}
		t.responseTimestamp = now

	case StatusResponseReceiving:
		if now.Sub(t.responseTimestamp) > edgeGapThreshold {
			if t.responseBitIndex < 32 {
				t.response <<= 1
				if !t.in.Get() {
					t.response |= 1
				}
				t.responseBitIndex++
			} else {
				// 33rd significant edge is the stop bit.
				t.status = StatusResponseReady
			}
			t.responseTimestamp = now
		}

	default:
		// No exchange outstanding; the interrupt context stays out of
		// the session entirely.
	}
}
