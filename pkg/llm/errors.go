package llm

import "errors"

// Error code constants for standardized error handling across vendors.
// Adapters map their native failures to one of these codes.
const (
	// ErrCodeValidation marks an invalid RequestOptions or
	// ToolDefinition caught at build time. Not retryable; fixable by
	// the caller.
	ErrCodeValidation = "validation_error"

	// ErrCodeSerialization marks a unified value that could not be
	// mapped to a vendor wire shape. Should not occur for supported
	// fields; treat as a defect.
	ErrCodeSerialization = "serialization_error"

	// ErrCodeTransport marks a network failure or non-2xx HTTP status,
	// surfaced verbatim from the transport with no retries.
	ErrCodeTransport = "transport_error"

	// ErrCodeDecoding marks a vendor response missing a mandatory field
	// or containing an unrecognized shape.
	ErrCodeDecoding = "decoding_error"
)

// Error is a typed error surfaced by the bridge. Use the Is* helpers
// below to classify errors without inspecting fields.
type Error struct {
	Code     string // One of the ErrCode* constants.
	Provider string // Vendor name, set for transport and decoding errors.
	Field    string // Offending wire field, set for decoding errors.
	Message  string // Human-readable description.
	Err      error  // Underlying error (may be nil).
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Field != "" {
		msg += " (field " + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a build-time validation error.
func NewValidationError(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message}
}

// NewSerializationError creates an error for a unified value that could
// not be mapped to the named vendor's wire shape.
func NewSerializationError(provider, message string, err error) *Error {
	return &Error{Code: ErrCodeSerialization, Provider: provider, Message: message, Err: err}
}

// NewTransportError creates an error for a network failure or non-2xx
// status from the named vendor.
func NewTransportError(provider, message string, err error) *Error {
	return &Error{Code: ErrCodeTransport, Provider: provider, Message: message, Err: err}
}

// NewDecodingError creates an error for a vendor response that could
// not be mapped to the unified model. Field names the offending wire
// field so a vendor API change can be diagnosed without re-running the
// request.
func NewDecodingError(provider, field, message string) *Error {
	return &Error{Code: ErrCodeDecoding, Provider: provider, Field: field, Message: message}
}

// IsValidationError reports whether err is a build-time validation failure.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsSerializationError reports whether err is a request-mapping failure.
func IsSerializationError(err error) bool {
	return hasCode(err, ErrCodeSerialization)
}

// IsTransportError reports whether err is a network or HTTP-status failure.
func IsTransportError(err error) bool {
	return hasCode(err, ErrCodeTransport)
}

// IsDecodingError reports whether err is a vendor-response decoding failure.
func IsDecodingError(err error) bool {
	return hasCode(err, ErrCodeDecoding)
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
