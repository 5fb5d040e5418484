package wire

// Status represents a response status code.
type Status uint8

const (
	// StatusSuccess indicates the operation completed. Lookups of unknown
	// names or handles still succeed with zero values.
	StatusSuccess Status = 0

	// StatusNotSupported indicates the runtime does not implement the
	// operation (action set layers).
	StatusNotSupported Status = 1

	// StatusBadRequest indicates a malformed payload.
	StatusBadRequest Status = 2

	// StatusUnknownMethod indicates the method is not known to the runtime.
	StatusUnknownMethod Status = 3

	// StatusInternal indicates a runtime failure.
	StatusInternal Status = 4
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusNotSupported:
		return "NOT_SUPPORTED"
	case StatusBadRequest:
		return "BAD_REQUEST"
	case StatusUnknownMethod:
		return "UNKNOWN_METHOD"
	case StatusInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
