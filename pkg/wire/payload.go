package wire

// NamePayload carries a name for the handle lookup methods.
type NamePayload struct {
	Name string `cbor:"1,keyasint"`
}

// CapacityPayload carries the caller's buffer size for
// ConnectedControllers, and the controller for ActiveActionSetLayers.
type CapacityPayload struct {
	Controller uint64 `cbor:"1,keyasint,omitempty"`
	Capacity   uint16 `cbor:"2,keyasint"`
}

// ControllerPayload addresses one controller.
type ControllerPayload struct {
	Controller uint64 `cbor:"1,keyasint"`
}

// ActionPayload addresses one action of one controller.
type ActionPayload struct {
	Controller uint64 `cbor:"1,keyasint"`
	Action     uint64 `cbor:"2,keyasint"`
}

// ActionSetPayload addresses one action set (or layer) of one controller.
type ActionSetPayload struct {
	Controller uint64 `cbor:"1,keyasint"`
	Set        uint64 `cbor:"2,keyasint"`
}

// HandlePayload is a single handle result. Zero means not found.
type HandlePayload struct {
	Value uint64 `cbor:"1,keyasint"`
}

// HandlesPayload is a handle list result.
type HandlesPayload struct {
	Values []uint64 `cbor:"1,keyasint"`
}

// DigitalPayload is a digital action sample.
type DigitalPayload struct {
	Pressed bool `cbor:"1,keyasint,omitempty"`
	Active  bool `cbor:"2,keyasint,omitempty"`
}

// AnalogPayload is an analog action sample.
type AnalogPayload struct {
	X      float32 `cbor:"1,keyasint,omitempty"`
	Y      float32 `cbor:"2,keyasint,omitempty"`
	Active bool    `cbor:"3,keyasint,omitempty"`
}

// ProductPayload is a controller product name.
type ProductPayload struct {
	Product string `cbor:"1,keyasint"`
}
