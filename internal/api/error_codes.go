// internal/api/error_codes.go
package api

// API error code constants. Analysis pipeline failures reuse the codes
// carried by the error taxonomy; these cover the HTTP surface itself.
const (
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorInternalError = "INTERNAL_ERROR"

	ErrorKindInvalid   = "KIND_INVALID"
	ErrorFormatInvalid = "FORMAT_INVALID"
	ErrorExportFailed  = "EXPORT_FAILED"
	ErrorStaleResponse = "STALE_RESPONSE"
)
