package opentherm

import (
	"time"

	"github.com/dwrobel/opentherm-library/hal"
)

// pollInterval is how long the blocking send path yields between polls.
const pollInterval = time.Millisecond

// Transceiver is one OpenTherm master session over an input/output GPIO
// pair. The session fields below the hardware handles are shared between
// the edge-interrupt context (HandleEdge) and the polling context
// (Process and the send path); cross-context accesses go through the
// guard. All state is fixed-size scalars, nothing allocates after New.
type Transceiver struct {
	in    hal.InputPin
	out   hal.OutputPin
	clk   hal.Clock
	guard hal.Guard

	status            Status
	response          Frame
	responseBitIndex  uint8
	responseTimestamp time.Time
	responseStatus    ResponseStatus
	onResponse        ResponseHandler
}

// New wires a transceiver to its hardware. The session stays in
// StatusNotInitialized until Begin.
func New(in hal.InputPin, out hal.OutputPin, clk hal.Clock, guard hal.Guard) *Transceiver {
	return &Transceiver{
		in:     in,
		out:    out,
		clk:    clk,
		guard:  guard,
		status: StatusNotInitialized,
	}
}

// Begin attaches the edge interrupt, idles the line long enough for the
// slave to power up and marks the session ready. handler may be nil; the
// outcome of each exchange then remains queryable through
// LastResponseStatus only.
func (t *Transceiver) Begin(handler ResponseHandler) error {
	t.onResponse = handler
	if err := t.in.SetInterrupt(t.HandleEdge); err != nil {
		return err
	}
	t.setIdle()
	t.clk.Sleep(slaveStartupHold)
	t.status = StatusReady
	return nil
}

// End detaches the edge interrupt and returns the session to its
// uninitialized state.
func (t *Transceiver) End() {
	_ = t.in.ClearInterrupt()
	t.status = StatusNotInitialized
}

// IsReady reports whether a new request would be accepted right now.
func (t *Transceiver) IsReady() bool {
	return t.status == StatusReady
}

// Status returns a guarded snapshot of the session status.
func (t *Transceiver) Status() Status {
	var st Status
	t.guard.Critical(func() { st = t.status })
	return st
}

// LastResponse returns the frame accumulated by the last exchange.
func (t *Transceiver) LastResponse() Frame {
	return t.response
}

// LastResponseStatus returns the outcome of the last completed exchange.
func (t *Transceiver) LastResponseStatus() ResponseStatus {
	return t.responseStatus
}

// Process advances the session outside the interrupt context. Call it on
// a regular cadence; it never blocks. Deadlines are measured against the
// clock, not the call rate, so a slow caller delays only the reporting,
// never the decision. Terminal receive states are resolved here, the
// response handler runs here, and the mandatory quiet period after every
// exchange is served here before the session reads ready again.
func (t *Transceiver) Process() {
	var (
		st Status
		ts time.Time
	)
	t.guard.Critical(func() { st, ts = t.status, t.responseTimestamp })

	if st == StatusReady {
		return
	}
	now := t.clk.Now()
	switch {
	case st != StatusNotInitialized && now.Sub(ts) > ExchangeTimeout:
		// Global deadline; wins over every branch below.
		t.responseStatus = ResponseTimeout
		t.notify()
		t.status = StatusReady

	case st == StatusResponseInvalid:
		t.responseStatus = ResponseInvalid
		t.notify()
		t.status = StatusDelay

	case st == StatusResponseReady:
		if t.response.ValidResponse() {
			t.responseStatus = ResponseSuccess
		} else {
			t.responseStatus = ResponseInvalid
		}
		t.notify()
		t.status = StatusDelay

	case st == StatusDelay:
		// Quiet period runs from the last line activity; the timestamp
		// is not touched when entering DELAY.
		if now.Sub(ts) > QuietPeriod {
			t.status = StatusReady
		}
	}
}

func (t *Transceiver) notify() {
	if t.onResponse != nil {
		t.onResponse(t.response, t.responseStatus)
	}
}
