package opentherm

// Status is the session lifecycle state of a Transceiver. The receive
// states between ResponseWaiting and ResponseInvalid are advanced only by
// the edge interrupt; the rest only by Process and the send path.
type Status uint8

const (
	StatusNotInitialized Status = iota
	StatusReady
	StatusRequestSending
	StatusResponseWaiting
	StatusResponseStartBit
	StatusResponseReceiving
	StatusResponseReady
	StatusResponseInvalid
	StatusDelay
)

func (s Status) String() string {
	switch s {
	case StatusNotInitialized:
		return "NOT_INITIALIZED"
	case StatusReady:
		return "READY"
	case StatusRequestSending:
		return "REQUEST_SENDING"
	case StatusResponseWaiting:
		return "RESPONSE_WAITING"
	case StatusResponseStartBit:
		return "RESPONSE_START_BIT"
	case StatusResponseReceiving:
		return "RESPONSE_RECEIVING"
	case StatusResponseReady:
		return "RESPONSE_READY"
	case StatusResponseInvalid:
		return "RESPONSE_INVALID"
	case StatusDelay:
		return "DELAY"
	default:
		return "UNKNOWN"
	}
}

// ResponseStatus is the outcome of the last completed exchange.
type ResponseStatus uint8

const (
	ResponseNone ResponseStatus = iota
	ResponseSuccess
	ResponseInvalid
	ResponseTimeout
)

func (rs ResponseStatus) String() string {
	switch rs {
	case ResponseNone:
		return "NONE"
	case ResponseSuccess:
		return "SUCCESS"
	case ResponseInvalid:
		return "INVALID"
	case ResponseTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

func (mt MessageType) String() string {
	switch mt {
	case MsgReadData:
		return "READ_DATA"
	case MsgWriteData:
		return "WRITE_DATA"
	case MsgInvalidData:
		return "INVALID_DATA"
	case MsgReserved:
		return "RESERVED"
	case MsgReadACK:
		return "READ_ACK"
	case MsgWriteACK:
		return "WRITE_ACK"
	case MsgDataInvalid:
		return "DATA_INVALID"
	case MsgUnknownDataID:
		return "UNKNOWN_DATA_ID"
	default:
		return "UNKNOWN"
	}
}
