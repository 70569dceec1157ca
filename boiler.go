package opentherm

// Convenience builders and parsers for the handful of data-ids this
// package knows the field layout of, layered on the generic codec the
// same way the raw send operations are layered on the session.

// Master status bits, sent in the high byte of a DataIDStatus read.
const (
	masterCHEnable      = 1 << 0
	masterDHWEnable     = 1 << 1
	masterCoolingEnable = 1 << 2
	masterOTCActive     = 1 << 3
	masterCH2Enable     = 1 << 4
)

// BuildSetBoilerStatusRequest builds the DataIDStatus exchange that both
// pushes the master's enable bits and reads the slave status back.
func BuildSetBoilerStatusRequest(centralHeating, hotWater, cooling, outsideCompensation, centralHeating2 bool) Frame {
	var data uint16
	if centralHeating {
		data |= masterCHEnable
	}
	if hotWater {
		data |= masterDHWEnable
	}
	if cooling {
		data |= masterCoolingEnable
	}
	if outsideCompensation {
		data |= masterOTCActive
	}
	if centralHeating2 {
		data |= masterCH2Enable
	}
	return BuildRequest(MsgReadData, DataIDStatus, data<<8)
}

// BuildSetBoilerTemperatureRequest builds a control setpoint write.
func BuildSetBoilerTemperatureRequest(temperature float32) Frame {
	return BuildRequest(MsgWriteData, DataIDTSet, TemperatureToData(temperature))
}

// BuildGetBoilerTemperatureRequest builds a boiler water temperature read.
func BuildGetBoilerTemperatureRequest() Frame {
	return BuildRequest(MsgReadData, DataIDTboiler, 0)
}

// Slave status bits of a DataIDStatus response, low byte.

func (f Frame) Fault() bool                { return f&0x01 != 0 }
func (f Frame) CentralHeatingActive() bool { return f&0x02 != 0 }
func (f Frame) HotWaterActive() bool       { return f&0x04 != 0 }
func (f Frame) FlameOn() bool              { return f&0x08 != 0 }
func (f Frame) CoolingActive() bool        { return f&0x10 != 0 }
func (f Frame) Diagnostic() bool           { return f&0x40 != 0 }

// Temperature decodes the data value of a valid response as a
// temperature, or 0 for an invalid frame.
func (f Frame) Temperature() float32 {
	if !f.ValidResponse() {
		return 0
	}
	return f.Float()
}

// SetBoilerStatus runs a blocking status exchange and returns the slave's
// response frame; inspect it with the status bit accessors above.
func (t *Transceiver) SetBoilerStatus(centralHeating, hotWater, cooling, outsideCompensation, centralHeating2 bool) (Frame, error) {
	return t.SendRequest(BuildSetBoilerStatusRequest(centralHeating, hotWater, cooling, outsideCompensation, centralHeating2))
}

// SetBoilerTemperature writes the control setpoint and reports whether
// the boiler acknowledged it.
func (t *Transceiver) SetBoilerTemperature(temperature float32) (bool, error) {
	response, err := t.SendRequest(BuildSetBoilerTemperatureRequest(temperature))
	if err != nil {
		return false, err
	}
	return response.ValidResponse(), nil
}

// BoilerTemperature reads the boiler water temperature.
func (t *Transceiver) BoilerTemperature() (float32, error) {
	response, err := t.SendRequest(BuildGetBoilerTemperatureRequest())
	if err != nil {
		return 0, err
	}
	return response.Temperature(), nil
}
