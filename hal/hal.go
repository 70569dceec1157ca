// Package hal defines the hardware primitives the transceiver is built
// on. Platform code (TinyGo pins, a Linux GPIO character device, or the
// simulated rig used for host testing) provides the implementations.
package hal

import "time"

// InputPin is the receive line: level reads plus edge notification.
type InputPin interface {
	// Get reads the current line level. High is the active state.
	Get() bool

	// SetInterrupt arranges for fn to be called on every transition,
	// rising and falling. fn runs in interrupt context and must not
	// block or allocate.
	SetInterrupt(fn func()) error

	// ClearInterrupt detaches the edge handler.
	ClearInterrupt() error
}

// OutputPin is the transmit line.
type OutputPin interface {
	// Set drives the line high or low.
	Set(high bool)
}

// Clock supplies monotonic time and the busy-wait delays that shape
// half-bit pulses. Sleep must hold microsecond precision; ordinary
// scheduler sleeps are too coarse on most targets.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Guard suppresses the edge-interrupt context for the duration of a
// critical section. The session fields shared with the interrupt handler
// are wider than one atomic access on small targets, so every
// cross-context read or read-modify-write runs under Critical.
type Guard interface {
	Critical(fn func())
}
