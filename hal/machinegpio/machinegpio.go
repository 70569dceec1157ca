//go:build tinygo || baremetal

// Package machinegpio implements the hal interfaces on TinyGo targets
// using the machine package's pins and interrupt support.
package machinegpio

import (
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/dwrobel/opentherm-library/hal"
)

type inputPin struct {
	pin machine.Pin
}

// InputPin configures p as a digital input and wraps it. OpenTherm
// interface circuits usually have their own pull-up; use the bare input
// mode and let the board bias the line.
func InputPin(p machine.Pin) hal.InputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinInput})
	return &inputPin{pin: p}
}

func (p *inputPin) Get() bool {
	return p.pin.Get()
}

func (p *inputPin) SetInterrupt(fn func()) error {
	return p.pin.SetInterrupt(machine.PinRising|machine.PinFalling, func(machine.Pin) { fn() })
}

func (p *inputPin) ClearInterrupt() error {
	return p.pin.SetInterrupt(machine.PinRising|machine.PinFalling, nil)
}

type outputPin struct {
	pin machine.Pin
}

// OutputPin configures p as a digital output and wraps it.
func OutputPin(p machine.Pin) hal.OutputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &outputPin{pin: p}
}

func (p *outputPin) Set(high bool) {
	p.pin.Set(high)
}

type clock struct{}

// Clock returns the target's monotonic clock.
func Clock() hal.Clock {
	return clock{}
}

func (clock) Now() time.Time {
	return time.Now()
}

// Sleep busy-waits. time.Sleep yields to the scheduler, whose tick is far
// coarser than a half-bit pulse.
func (clock) Sleep(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}

type guard struct{}

// Guard masks interrupts around critical sections.
func Guard() hal.Guard {
	return guard{}
}

func (guard) Critical(fn func()) {
	state := interrupt.Disable()
	fn()
	interrupt.Restore(state)
}
