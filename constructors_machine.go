//go:build tinygo || baremetal

package opentherm

import (
	"machine"

	"github.com/dwrobel/opentherm-library/hal/machinegpio"
)

// NewMachine builds a transceiver on two machine pins using the target's
// clock and interrupt masking.
func NewMachine(in, out machine.Pin) *Transceiver {
	return New(
		machinegpio.InputPin(in),
		machinegpio.OutputPin(out),
		machinegpio.Clock(),
		machinegpio.Guard(),
	)
}
