package opentherm

import "errors"

var (
	// ErrNotInitialized is returned when sending before Begin.
	ErrNotInitialized = errors.New("opentherm: transceiver not initialized")

	// ErrNotReady is returned when a send is attempted while an exchange
	// is in flight or the post-exchange quiet period has not elapsed. The
	// in-flight state is left untouched; nothing is transmitted.
	ErrNotReady = errors.New("opentherm: exchange in progress")

	// ErrTimeout is returned by blocking sends when no response settled
	// within ExchangeTimeout.
	ErrTimeout = errors.New("opentherm: response timeout")

	// ErrInvalidResponse is returned by blocking sends when the response
	// failed parity, carried a non-acknowledgement type, or violated the
	// line timing during reconstruction.
	ErrInvalidResponse = errors.New("opentherm: invalid response")
)
