package domain

// ErrorKind classifies a failure so the transport layer can pick a
// status code without inspecting messages.
type ErrorKind int

const (
	// KindValidation covers missing required input and uniqueness
	// constraint violations.
	KindValidation ErrorKind = iota
	// KindNotFound covers lookups of identifiers that do not resolve.
	KindNotFound
	// KindInternal covers unexpected store or runtime failures.
	KindInternal
)

// Error is the single tagged error surface for the service. Every
// failing operation returns one, so each request maps to exactly one
// response.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation builds a validation-kind error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound builds a not-found-kind error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure. The cause is kept for server
// side logging; clients only ever see the generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Cause: cause}
}
