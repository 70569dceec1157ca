//go:build !tinygo && !baremetal

package opentherm

import "github.com/dwrobel/opentherm-library/hal/simulated"

// NewSimulated builds a transceiver on a simulated rig for host-side
// tests and demos. The returned rig owns the clock and both lines.
func NewSimulated() (*Transceiver, *simulated.Rig) {
	rig := simulated.NewRig()
	return New(rig.In, rig.Out, rig.Clock, rig.Guard), rig
}
