package opentherm

// The transmit side drives the output pin directly; the interface circuit
// inverts, so the active state is driven low and idle high.

func (t *Transceiver) setActive() {
	t.out.Set(false)
}

func (t *Transceiver) setIdle() {
	t.out.Set(true)
}

// sendBit emits one logical bit as two half-bit pulses: a "1" is active
// then idle, a "0" idle then active.
func (t *Transceiver) sendBit(one bool) {
	if one {
		t.setActive()
	} else {
		t.setIdle()
	}
	t.clk.Sleep(HalfBitPeriod)
	if one {
		t.setIdle()
	} else {
		t.setActive()
	}
	t.clk.Sleep(HalfBitPeriod)
}

// SendRequestAsync transmits one request burst and arms the receive state
// machine. It blocks for the duration of the burst itself (34 bit periods)
// but returns without waiting for the response; drive Process afterwards.
// A send while the session is not ready is rejected with no side effects.
func (t *Transceiver) SendRequestAsync(request Frame) error {
	var st Status
	t.guard.Critical(func() { st = t.status })
	if st == StatusNotInitialized {
		return ErrNotInitialized
	}
	if st != StatusReady {
		return ErrNotReady
	}

	t.status = StatusRequestSending
	t.response = 0
	t.responseStatus = ResponseNone

	t.sendBit(true) // start bit
	for i := 31; i >= 0; i-- {
		t.sendBit(request>>uint(i)&1 == 1)
	}
	t.sendBit(true) // stop bit
	t.setIdle()

	t.status = StatusResponseWaiting
	t.responseTimestamp = t.clk.Now()
	return nil
}

// SendRequest is the blocking variant: it transmits the request, polls
// until the session is ready again and returns the received frame. The
// frame is zero when the send was rejected at entry or nothing arrived.
func (t *Transceiver) SendRequest(request Frame) (Frame, error) {
	if err := t.SendRequestAsync(request); err != nil {
		return 0, err
	}
	for !t.IsReady() {
		t.Process()
		t.clk.Sleep(pollInterval)
	}
	switch t.responseStatus {
	case ResponseSuccess:
		return t.response, nil
	case ResponseTimeout:
		return t.response, ErrTimeout
	default:
		return t.response, ErrInvalidResponse
	}
}
