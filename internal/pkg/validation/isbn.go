package validation

import (
	"strconv"
	"strings"
)

// NormalizeISBN strips hyphens and surrounding whitespace from an ISBN so that
// "978-1-4028-9462-6" and "9781402894626" compare equal.
func NormalizeISBN(isbn string) string {
	isbn = strings.TrimSpace(isbn)
	return strings.ReplaceAll(isbn, "-", "")
}

// IsISBN reports whether the normalized identifier has the shape of an ISBN-10
// or ISBN-13.
func IsISBN(identifier string) bool {
	stripped := NormalizeISBN(identifier)
	return len(stripped) == 10 || len(stripped) == 13
}

// ClassifyBookIdentifier splits a book identifier into either a numeric id or
// a normalized ISBN. A stripped string of length 10 or 13 is treated as an
// ISBN; anything else must parse as an integer id.
func ClassifyBookIdentifier(identifier string) (id int64, isbn string, ok bool) {
	stripped := NormalizeISBN(identifier)
	if len(stripped) == 10 || len(stripped) == 13 {
		return 0, stripped, true
	}

	// The id branch parses the identifier as given (only trimmed), so a
	// hyphenated junk value like "-1" or "4-2" cannot collapse into a
	// valid id.
	id, err := strconv.ParseInt(strings.TrimSpace(identifier), 10, 64)
	if err != nil || id < 1 {
		return 0, "", false
	}
	return id, "", true
}
