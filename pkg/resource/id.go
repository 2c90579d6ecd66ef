package resource

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxIDLength is the longest identifier accepted, in bytes. Stores that add
// a suffix may reject shorter keys with storage.ErrInvalidKey.
const MaxIDLength = 255

// ValidateID checks that id can be used as a storage key. The returned error
// is a *Error of kind KindInvalidID.
func ValidateID(id ID) error {
	reason := checkID(id)
	if reason == "" {
		return nil
	}
	return &Error{Kind: KindInvalidID, ID: id, Message: reason}
}

func checkID(id ID) string {
	switch {
	case id == "":
		return "identifier is empty"
	case len(id) > MaxIDLength:
		return fmt.Sprintf("identifier longer than %d bytes", MaxIDLength)
	case !utf8.ValidString(id):
		return "identifier is not valid UTF-8"
	case id == "." || id == "..":
		return "identifier is a relative path element"
	case strings.ContainsAny(id, `/\`):
		return "identifier contains a path separator"
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return "identifier contains a control character"
		}
	}
	return ""
}
