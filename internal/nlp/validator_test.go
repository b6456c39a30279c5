// internal/nlp/validator_test.go
package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
)

func TestValidate_EmptyInput(t *testing.T) {
	require.True(t, apperrors.IsEmptyInput(Validate("")))
	require.True(t, apperrors.IsEmptyInput(Validate("   ")))
	require.True(t, apperrors.IsEmptyInput(Validate("\n\t ")))
}

func TestValidate_LengthLimit(t *testing.T) {
	require.NoError(t, Validate(strings.Repeat("a", 1000)))

	err := Validate(strings.Repeat("a", 1001))
	require.True(t, apperrors.IsLengthExceeded(err))
}

func TestValidate_LengthCountsRunes(t *testing.T) {
	// 1000 multibyte characters are within the limit even though the
	// byte length is far beyond it.
	require.NoError(t, Validate(strings.Repeat("你", 1000)))
	require.True(t, apperrors.IsLengthExceeded(Validate(strings.Repeat("你", 1001))))
}

func TestValidate_EmptyCheckedBeforeLength(t *testing.T) {
	// Whitespace-only text longer than the limit still reports empty
	// input: the checks run in order.
	err := Validate(strings.Repeat(" ", 1500))
	require.True(t, apperrors.IsEmptyInput(err))
}

func TestValidate_ValidText(t *testing.T) {
	require.NoError(t, Validate("The quick brown fox."))
}
