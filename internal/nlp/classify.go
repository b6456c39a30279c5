// internal/nlp/classify.go
package nlp

import (
	"errors"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
)

// User-facing messages, one per failure class. The throttle message is
// constant regardless of how much of the window remains.
const (
	MsgEmptyInput     = "Please enter text."
	MsgLengthExceeded = "Text exceeds limit (1000 characters)."
	MsgThrottled      = "Please wait before analyzing again."
	MsgServerRejected = "Text exceeds limit or is invalid."
	MsgUnexpected     = "Unexpected error, please try again later."
)

// UserMessage maps any analysis failure to a displayable string. It is
// total: every error, including ones from outside the taxonomy, yields
// the generic unexpected-error message rather than failing.
func UserMessage(err error) string {
	var appError *apperrors.AppError
	if !errors.As(err, &appError) {
		return MsgUnexpected
	}

	switch appError.Type {
	case apperrors.ErrorTypeEmptyInput:
		return MsgEmptyInput
	case apperrors.ErrorTypeLengthExceeded:
		return MsgLengthExceeded
	case apperrors.ErrorTypeThrottled:
		return MsgThrottled
	case apperrors.ErrorTypeServerRejected:
		// HTTP 400 bodies are surfaced verbatim when the server said anything.
		if appError.Message != "" {
			return appError.Message
		}
		return MsgServerRejected
	default:
		return MsgUnexpected
	}
}
