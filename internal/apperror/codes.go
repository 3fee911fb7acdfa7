package apperror

import "net/http"

// Code is a stable, machine-readable error identifier exposed on the wire.
// Codes are partitioned by numeric range into categories purely for
// organization -- the range carries no runtime behavior:
//
//	L1xxx / L9xxx  general and system faults
//	L2xxx          authentication faults
//	L3xxx          authorization faults
//	L4xxx          validation faults
//	L5xxx          business-logic faults
//	L6xxx          storage faults
//	L7xxx          external-service faults
//	L8xxx          file and media faults
type Code string

// General / system (L1xxx, L9xxx).
const (
	CodeInternalError      Code = "L1000"
	CodeServiceUnavailable Code = "L1001"
	CodeUnknownError       Code = "L9000"
)

// Authentication (L2xxx).
const (
	CodeSessionNotFound      Code = "L2000"
	CodeSessionExpired       Code = "L2001"
	CodeSessionIPMismatch    Code = "L2002"
	CodeMalformedSessionData Code = "L2003"
	CodeInvalidPassword      Code = "L2004"
	CodeAccountNotFound      Code = "L2005"
	CodeAccountLocked        Code = "L2006"
	CodeInvalidResetToken    Code = "L2007"
)

// Authorization (L3xxx).
const (
	CodeForbidden         Code = "L3000"
	CodeInsufficientLevel Code = "L3001"
	CodeStaffOnly         Code = "L3002"
)

// Validation (L4xxx).
const (
	CodeMissingRequiredFields Code = "L4000"
	CodeInvalidLoginType      Code = "L4001"
	CodeInvalidEmailFormat    Code = "L4002"
	CodePasswordTooWeak       Code = "L4003"
	CodePayloadTooLarge       Code = "L4004"
	CodeMethodNotAllowed      Code = "L4005"
)

// Business logic (L5xxx).
const (
	CodeEntityNotFound       Code = "L5000"
	CodeDuplicateEmail       Code = "L5001"
	CodeInvalidStaffCode     Code = "L5002"
	CodeStaffCodeExhausted   Code = "L5003"
	CodeAnnouncementNotFound Code = "L5004"
	CodeEventNotFound        Code = "L5005"
	CodeTicketNotFound       Code = "L5006"
	CodeInvalidTicketStatus  Code = "L5007"
)

// Storage (L6xxx).
const (
	CodeDatabaseError   Code = "L6000"
	CodeDatabaseTimeout Code = "L6001"
	CodeDuplicateKey    Code = "L6002"
)

// External services (L7xxx).
const (
	CodeUpstreamError       Code = "L7000"
	CodeUpstreamUnavailable Code = "L7001"
	CodeMailDeliveryFailed  Code = "L7002"
)

// Files / media (L8xxx).
const (
	CodeFileNotFound    Code = "L8000"
	CodeInvalidFileType Code = "L8001"
	CodeFileSaveFailed  Code = "L8002"
	CodeStorageFull     Code = "L8003"
)

// definition is the canonical message and HTTP status for a code. Every
// code maps to exactly one definition; details never change this mapping.
type definition struct {
	message string
	status  int
}

// registry is the closed code table. Adding a code means adding exactly one
// entry here -- there is deliberately no way to construct an Error with a
// status or message that disagrees with this table.
var registry = map[Code]definition{
	CodeInternalError:      {"An unexpected error occurred. Please try again.", http.StatusInternalServerError},
	CodeServiceUnavailable: {"The service is temporarily unavailable.", http.StatusServiceUnavailable},
	CodeUnknownError:       {"An unexpected error occurred. Please try again.", http.StatusInternalServerError},

	CodeSessionNotFound:      {"Session not found or no longer valid.", http.StatusUnauthorized},
	CodeSessionExpired:       {"Session has expired. Please sign in again.", http.StatusUnauthorized},
	CodeSessionIPMismatch:    {"Session was issued from a different network.", http.StatusUnauthorized},
	CodeMalformedSessionData: {"Session data is malformed. Please sign in again.", http.StatusUnauthorized},
	CodeInvalidPassword:      {"Email or password is incorrect.", http.StatusUnauthorized},
	CodeAccountNotFound:      {"No account exists for this identifier.", http.StatusNotFound},
	CodeAccountLocked:        {"This account is locked. Contact an administrator.", http.StatusLocked},
	CodeInvalidResetToken:    {"Password reset link is invalid or has expired.", http.StatusUnauthorized},

	CodeForbidden:         {"You do not have permission to perform this action.", http.StatusForbidden},
	CodeInsufficientLevel: {"Your account level does not allow this action.", http.StatusForbidden},
	CodeStaffOnly:         {"This action is restricted to staff accounts.", http.StatusForbidden},

	CodeMissingRequiredFields: {"One or more required fields are missing.", http.StatusBadRequest},
	CodeInvalidLoginType:      {"Login-Type must be WEB or APP.", http.StatusBadRequest},
	CodeInvalidEmailFormat:    {"Email address is not valid.", http.StatusBadRequest},
	CodePasswordTooWeak:       {"Password does not meet the minimum requirements.", http.StatusBadRequest},
	CodePayloadTooLarge:       {"Request payload is too large.", http.StatusRequestEntityTooLarge},
	CodeMethodNotAllowed:      {"HTTP method is not allowed for this route.", http.StatusMethodNotAllowed},

	CodeEntityNotFound:       {"The requested resource was not found.", http.StatusNotFound},
	CodeDuplicateEmail:       {"An account with this email already exists.", http.StatusConflict},
	CodeInvalidStaffCode:     {"Staff code is invalid or has been revoked.", http.StatusBadRequest},
	CodeStaffCodeExhausted:   {"Staff code has no remaining uses.", http.StatusConflict},
	CodeAnnouncementNotFound: {"Announcement not found.", http.StatusNotFound},
	CodeEventNotFound:        {"Calendar event not found.", http.StatusNotFound},
	CodeTicketNotFound:       {"Repair ticket not found.", http.StatusNotFound},
	CodeInvalidTicketStatus:  {"Repair ticket status transition is not allowed.", http.StatusBadRequest},

	CodeDatabaseError:   {"A database error occurred.", http.StatusInternalServerError},
	CodeDatabaseTimeout: {"The database took too long to respond.", http.StatusRequestTimeout},
	CodeDuplicateKey:    {"A conflicting record already exists.", http.StatusConflict},

	CodeUpstreamError:       {"An upstream service returned an error.", http.StatusBadGateway},
	CodeUpstreamUnavailable: {"An upstream service is unavailable.", http.StatusServiceUnavailable},
	CodeMailDeliveryFailed:  {"Failed to deliver email.", http.StatusBadGateway},

	CodeFileNotFound:    {"File not found.", http.StatusNotFound},
	CodeInvalidFileType: {"File type is not allowed.", http.StatusBadRequest},
	CodeFileSaveFailed:  {"Failed to store file.", http.StatusInternalServerError},
	CodeStorageFull:     {"Storage capacity exceeded.", http.StatusInsufficientStorage},
}

// Known reports whether the code exists in the registry.
func Known(code Code) bool {
	_, ok := registry[code]
	return ok
}
