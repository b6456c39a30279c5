// internal/nlp/validator.go
package nlp

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
)

// MaxTextLength is the input limit enforced before dispatch, in runes.
const MaxTextLength = 1000

// Validate checks user input before any throttle or network activity.
// Checks run in order: empty or whitespace-only text first, then the
// length limit. Invalid input never consumes a throttle slot.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.NewEmptyInputError()
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return apperrors.NewLengthExceededError(n)
	}
	return nil
}
