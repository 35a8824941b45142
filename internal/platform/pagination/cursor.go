package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCursor is returned when a cursor cannot be decoded.
var ErrInvalidCursor = errors.New("pagination: invalid cursor")

// Cursor is an opaque pagination position: a resource type plus the
// identifier of the last item on the previous page. An empty Value means
// "start from the beginning".
type Cursor struct {
	Type  string
	Value string
}

// Encode renders the cursor as unpadded URL-safe base64.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Type + ":" + c.Value))
}

// DecodeCursor parses an encoded cursor. An empty string decodes to the
// zero Cursor.
func DecodeCursor(encoded string) (Cursor, error) {
	if encoded == "" {
		return Cursor{}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %s", ErrInvalidCursor, err)
	}
	typ, value, ok := strings.Cut(string(raw), ":")
	if !ok {
		return Cursor{}, fmt.Errorf("%w: missing separator", ErrInvalidCursor)
	}
	return Cursor{Type: typ, Value: value}, nil
}
