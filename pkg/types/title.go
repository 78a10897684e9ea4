package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the longest accepted list or todo title, in characters.
const MaxTitleLength = 100

// ValidateTitle trims title and checks it is between 1 and MaxTitleLength
// characters. It returns the trimmed title. Stores do not call this; the
// command layer validates input before reaching a store.
func ValidateTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	n := utf8.RuneCountInString(t)
	if n == 0 || n > MaxTitleLength {
		return "", fmt.Errorf("%w: must be between 1 and %d characters", ErrInvalidTitle, MaxTitleLength)
	}
	return t, nil
}
