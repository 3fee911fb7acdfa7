// Package apperror is the closed error taxonomy for Lumina. Every known
// failure condition has a stable L#### code that maps to exactly one
// user-safe message and one HTTP status. The Echo error handler renders
// any error -- known or not -- into the JSON envelope
//
//	{"error": {"code": "L####", "message": "...", "details"?: {...}}}
//
// NEVER return raw database or infrastructure errors to the client. Always
// wrap them in an apperror or let the error handler downgrade them to L9000.
package apperror

import (
	"fmt"
	"net/http"
)

// Error is the single error type carried through the application. It is a
// tagged instance of the code registry: the code picks the message and
// status, Details add optional structured context, and Internal holds the
// underlying cause for logging (never exposed to the client).
type Error struct {
	// Code is the stable wire identifier (e.g., "L2000").
	Code Code `json:"code"`

	// Message is the canonical human-readable description for the code.
	Message string `json:"message"`

	// Details is optional structured context. Additive only -- it never
	// changes the code/status mapping.
	Details map[string]any `json:"details,omitempty"`

	// Status is the HTTP status for the code.
	Status int `json:"-"`

	// Internal holds the underlying error for logging. Never exposed.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Internal
}

// WithDetails returns a copy of the error carrying the given diagnostic
// details. The code/status/message stay untouched.
func (e *Error) WithDetails(details map[string]any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// New creates an Error for a known code. Unregistered codes fall back to
// the unknown-error definition so a typo can never produce a zero-status
// response.
func New(code Code) *Error {
	def, ok := registry[code]
	if !ok {
		def = registry[CodeUnknownError]
		code = CodeUnknownError
	}
	return &Error{
		Code:    code,
		Message: def.message,
		Status:  def.status,
	}
}

// Wrap creates an Error for a known code and attaches the underlying cause
// for logging. Use this when an infrastructure error is being classified.
func Wrap(code Code, err error) *Error {
	e := New(code)
	e.Internal = err
	return e
}

// NewInternal is shorthand for the generic internal-error code wrapping a cause.
func NewInternal(err error) *Error {
	return Wrap(CodeInternalError, err)
}

// envelope is the wire shape every error response uses.
type envelope struct {
	Error *Error `json:"error"`
}

// Render classifies any error into (status, body). Known *Error values
// render their own code/message/status. Anything else is downgraded to the
// unknown-error code with the original message preserved as
// details.cause -- diagnostic only, never authoritative, and never a stack
// trace in the message field. This is the single chokepoint all handlers
// funnel failures through.
func Render(err error) (int, any) {
	appErr := From(err)
	return appErr.Status, envelope{Error: appErr}
}

// From converts any error into an *Error. Known errors pass through
// unchanged; unknown errors become CodeUnknownError with the original
// message attached as details.
func From(err error) *Error {
	if err == nil {
		return New(CodeUnknownError)
	}
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	unknown := Wrap(CodeUnknownError, err)
	unknown.Details = map[string]any{"cause": err.Error()}
	return unknown
}

// StatusOf returns the HTTP status an error would render with. Useful for
// logging decisions without building the envelope.
func StatusOf(err error) int {
	if appErr, ok := err.(*Error); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
