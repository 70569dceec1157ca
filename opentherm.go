// Package opentherm implements the master side of the OpenTherm protocol,
// the two-wire signalling scheme used between a heating thermostat and a
// boiler. It bit-bangs request frames onto an output line and reconstructs
// response frames from edge interrupts on an input line.
//
// One request/response exchange is in flight at a time. Call Process on a
// regular cadence to advance the session between exchanges; the receive
// side itself runs entirely inside the input pin's edge interrupt.
package opentherm

import "time"

// Wire timing. A logical bit occupies two consecutive half-bit periods;
// which half is active decides the bit value.
const (
	// HalfBitPeriod is the width of one active or idle pulse segment.
	HalfBitPeriod = 500 * time.Microsecond

	// BitPeriod is the nominal duration of one logical bit on the wire.
	BitPeriod = 2 * HalfBitPeriod

	// ExchangeTimeout bounds a whole exchange, measured from the end of
	// the transmitted request.
	ExchangeTimeout = 800 * time.Millisecond

	// QuietPeriod is the mandatory gap after an exchange before the next
	// request may be sent.
	QuietPeriod = 100 * time.Millisecond

	// edgeGapThreshold separates the boundary between two bit periods
	// from the encoding's own mid-bit transition. Only edges further than
	// this from the previous significant edge carry a bit.
	edgeGapThreshold = 750 * time.Microsecond

	// slaveStartupHold is how long the line is held idle during Begin.
	// The slave draws its power from the line and needs it stable before
	// the first exchange.
	slaveStartupHold = time.Second
)

// ResponseHandler is invoked once per finished exchange with the received
// frame (zero on timeout before any bit arrived) and its outcome. It is
// only ever called from Process, never from the edge interrupt.
type ResponseHandler func(Frame, ResponseStatus)
