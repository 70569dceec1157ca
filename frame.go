package opentherm

import "math/bits"

// Frame is one 32-bit OpenTherm protocol unit.
//
//	bit 31     parity, set so the whole frame has an even number of 1s
//	bits 30-28 message type
//	bits 27-16 data-id
//	bits 15-0  data value (two bytes, or an 8.8 fixed-point quantity)
type Frame uint32

// MessageType is the 3-bit frame type field. All eight bit patterns are
// meaningful; masters send READ_DATA/WRITE_DATA and accept only
// READ_ACK/WRITE_ACK back.
type MessageType uint8

const (
	MsgReadData MessageType = iota
	MsgWriteData
	MsgInvalidData
	MsgReserved
	MsgReadACK
	MsgWriteACK
	MsgDataInvalid
	MsgUnknownDataID
)

// DataID identifies the meaning of a frame's data value. The core treats
// it as opaque; the full OpenTherm id table lives with the application.
type DataID uint16

// The handful of ids this package gives concrete semantics.
const (
	DataIDStatus  DataID = 0  // master/slave status bitmasks
	DataIDTSet    DataID = 1  // control setpoint, 8.8 float
	DataIDRelMod  DataID = 17 // relative modulation level
	DataIDTboiler DataID = 25 // boiler water temperature
	DataIDTdhw    DataID = 26 // domestic hot water temperature
	DataIDTret    DataID = 28 // return water temperature
	DataIDTdhwSet DataID = 56 // DHW setpoint
	DataIDMaxTSet DataID = 57 // max allowed control setpoint
)

// oddParity reports whether v has an odd number of set bits. The builder
// uses it to pick the parity bit; the validator uses it to reject frames
// whose total popcount ended up odd.
func oddParity(v uint32) bool {
	return bits.OnesCount32(v)&1 == 1
}

// BuildRequest assembles a frame from its fields and sets the parity bit
// so the total number of set bits is even.
func BuildRequest(mt MessageType, id DataID, data uint16) Frame {
	req := uint32(data) | uint32(id&0xfff)<<16 | uint32(mt&7)<<28
	if oddParity(req) {
		req |= 1 << 31
	}
	return Frame(req)
}

// MessageType extracts the 3-bit type field.
func (f Frame) MessageType() MessageType {
	return MessageType(f >> 28 & 7)
}

// DataID extracts the 12-bit data-id field.
func (f Frame) DataID() DataID {
	return DataID(f >> 16 & 0xfff)
}

// UInt16 returns the raw 16-bit data value.
func (f Frame) UInt16() uint16 {
	return uint16(f)
}

// Float interprets the data value as a signed 8.8 fixed-point quantity.
func (f Frame) Float() float32 {
	u := f.UInt16()
	if u&0x8000 != 0 {
		return -float32(0x10000-uint32(u)) / 256
	}
	return float32(u) / 256
}

// ValidResponse reports whether f is an acceptable slave response: even
// total parity and an acknowledgement message type. This is the sole
// acceptance gate for received frames.
func (f Frame) ValidResponse() bool {
	if oddParity(uint32(f)) {
		return false
	}
	mt := f.MessageType()
	return mt == MsgReadACK || mt == MsgWriteACK
}

// TemperatureToData encodes a temperature as an 8.8 data value, clamped
// to [0, 100] degrees. The write path has no negative encoding.
func TemperatureToData(temperature float32) uint16 {
	if temperature < 0 {
		temperature = 0
	}
	if temperature > 100 {
		temperature = 100
	}
	return uint16(temperature * 256)
}
