package log

import (
	"time"

	"github.com/padbridge/padbridge-go/pkg/wire"
)

// Event is one captured event. CBOR encoding uses integer keys.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one process run.
	SessionID string `cbor:"2,keyasint,omitempty"`

	// ConnectionID identifies a remote gateway connection (UUID).
	ConnectionID string `cbor:"3,keyasint,omitempty"`

	// Direction of remote traffic. Zero for local events.
	Direction Direction `cbor:"4,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"5,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"6,keyasint"`

	// Controller is the vendor controller handle value, if any.
	Controller uint64 `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Device     *DeviceEvent     `cbor:"10,keyasint,omitempty"`
	Activation *ActivationEvent `cbor:"11,keyasint,omitempty"`
	State      *StateEvent      `cbor:"12,keyasint,omitempty"`
	Frame      *FrameEvent      `cbor:"13,keyasint,omitempty"`
	Message    *MessageEvent    `cbor:"14,keyasint,omitempty"`
	Error      *ErrorEventData  `cbor:"15,keyasint,omitempty"`
}

// Direction indicates the direction of remote traffic.
type Direction uint8

const (
	// DirectionIn indicates an incoming frame or message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing frame or message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates where the event was captured.
type Layer uint8

const (
	// LayerDevice is the controller device core (discovery, activation).
	LayerDevice Layer = 0
	// LayerTransport is the framing layer (raw bytes).
	LayerTransport Layer = 1
	// LayerWire is the remote gateway protocol layer (decoded CBOR).
	LayerWire Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerDevice:
		return "DEVICE"
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer parses a layer name.
func ParseLayer(s string) (Layer, bool) {
	for _, l := range []Layer{LayerDevice, LayerTransport, LayerWire} {
		if l.String() == s {
			return l, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryDevice is a device lifecycle change.
	CategoryDevice Category = 0
	// CategoryActivation is an action set activation.
	CategoryActivation Category = 1
	// CategoryState is a queued state event.
	CategoryState Category = 2
	// CategoryFrame is a raw transport frame.
	CategoryFrame Category = 3
	// CategoryMessage is a decoded remote gateway message.
	CategoryMessage Category = 4
	// CategoryError is an error at any layer.
	CategoryError Category = 5
)

var categoryNames = map[Category]string{
	CategoryDevice:     "DEVICE",
	CategoryActivation: "ACTIVATION",
	CategoryState:      "STATE",
	CategoryFrame:      "FRAME",
	CategoryMessage:    "MESSAGE",
	CategoryError:      "ERROR",
}

// String returns the category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, bool) {
	for c, name := range categoryNames {
		if name == s {
			return c, true
		}
	}
	return 0, false
}

// DeviceEvent captures a controller device lifecycle transition.
type DeviceEvent struct {
	// Name is the generic input device name.
	Name string `cbor:"1,keyasint"`

	// Product is the product used for layout selection.
	Product string `cbor:"2,keyasint,omitempty"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"3,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"4,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"5,keyasint,omitempty"`
}

// ActivationSource tells what triggered an activation.
type ActivationSource uint8

const (
	// SourceManual is an explicit ActivateActionSet call.
	SourceManual ActivationSource = 0
	// SourceSync is activation by the action map bridge.
	SourceSync ActivationSource = 1
)

// String returns the source name.
func (s ActivationSource) String() string {
	switch s {
	case SourceManual:
		return "MANUAL"
	case SourceSync:
		return "SYNC"
	default:
		return "UNKNOWN"
	}
}

// ActivationEvent captures an action set activation.
type ActivationEvent struct {
	// Set is the action set handle value.
	Set uint64 `cbor:"1,keyasint"`

	// SetName is the action set name, when known.
	SetName string `cbor:"2,keyasint,omitempty"`

	// Source of the activation.
	Source ActivationSource `cbor:"3,keyasint"`
}

// StateEvent captures control values queued for a device.
type StateEvent struct {
	// Device is the generic input device name.
	Device string `cbor:"1,keyasint"`

	// Values maps control names to values.
	Values map[string]any `cbor:"2,keyasint,omitempty"`
}

// FrameEvent captures raw frame data at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including length prefix).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageType distinguishes requests from responses.
type MessageType uint8

const (
	// MessageTypeRequest indicates a request message.
	MessageTypeRequest MessageType = 0
	// MessageTypeResponse indicates a response message.
	MessageTypeResponse MessageType = 1
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageTypeRequest:
		return "REQUEST"
	case MessageTypeResponse:
		return "RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// MessageEvent captures a decoded remote gateway message.
type MessageEvent struct {
	// Type distinguishes request and response.
	Type MessageType `cbor:"1,keyasint"`

	// MessageID correlates request/response pairs.
	MessageID uint32 `cbor:"2,keyasint"`

	// For requests: the gateway method.
	Method *wire.Method `cbor:"3,keyasint,omitempty"`

	// For responses: the status code.
	Status *wire.Status `cbor:"4,keyasint,omitempty"`

	// ProcessingTime is the time from request receipt to response send
	// (response only).
	ProcessingTime *time.Duration `cbor:"5,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
