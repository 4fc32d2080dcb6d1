package predicate

import (
	"golang.org/x/text/encoding/unicode"
)

// decodeUTF8 interprets b as UTF-8 text. It transcodes through x/text
// rather than a bare string(b) cast so an invalid UTF-8 sequence
// becomes the Unicode replacement character in a well-defined way
// instead of silently passing through whatever bytes happened to be
// there. A fresh decoder is used per call; an encoding.Decoder is not
// safe for concurrent reuse.
func decodeUTF8(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// utf8Equal compares raw bytes against a string under the UTF-8
// interpretation of the bytes.
func utf8Equal(b []byte, s string) bool {
	return decodeUTF8(b) == s
}
