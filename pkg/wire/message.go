package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Message errors.
var (
	ErrReservedMessageID = errors.New("messageId 0 is reserved")
	ErrInvalidMethod     = errors.New("invalid method")
)

// Request is a gateway call.
//
// CBOR encoding:
//
//	{
//	  1: messageId,   // uint32, never 0
//	  2: method,      // uint8
//	  3: payload      // method-specific, see payload.go
//	}
type Request struct {
	MessageID uint32          `cbor:"1,keyasint"`
	Method    Method          `cbor:"2,keyasint"`
	Payload   cbor.RawMessage `cbor:"3,keyasint,omitempty"`
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if r.MessageID == 0 {
		return ErrReservedMessageID
	}
	if !r.Method.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidMethod, r.Method)
	}
	return nil
}

// Response answers a Request.
//
// CBOR encoding:
//
//	{
//	  1: messageId,   // uint32, matches request
//	  2: status,      // uint8
//	  3: payload,     // method-specific result (success only)
//	  4: message      // error text (failure only)
//	}
type Response struct {
	MessageID uint32          `cbor:"1,keyasint"`
	Status    Status          `cbor:"2,keyasint"`
	Payload   cbor.RawMessage `cbor:"3,keyasint,omitempty"`
	Message   string          `cbor:"4,keyasint,omitempty"`
}

// IsSuccess returns true if the response indicates success.
func (r *Response) IsSuccess() bool {
	return r.Status.IsSuccess()
}

// NewRequest builds a request with payload encoded. A nil payload is
// omitted.
func NewRequest(id uint32, method Method, payload any) (*Request, error) {
	req := &Request{MessageID: id, Method: method}
	if payload != nil {
		raw, err := Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", method, err)
		}
		req.Payload = raw
	}
	return req, nil
}

// NewResponse builds a successful response with payload encoded.
func NewResponse(id uint32, payload any) (*Response, error) {
	resp := &Response{MessageID: id, Status: StatusSuccess}
	if payload != nil {
		raw, err := Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode response payload: %w", err)
		}
		resp.Payload = raw
	}
	return resp, nil
}

// NewErrorResponse builds a failed response.
func NewErrorResponse(id uint32, status Status, message string) *Response {
	return &Response{MessageID: id, Status: status, Message: message}
}

// DecodePayload decodes a request or response payload into v. An empty
// payload leaves v unchanged.
func DecodePayload(raw cbor.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return Unmarshal(raw, v)
}
