package timeutil

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

const (
	// RFC3339Millis formats timestamps with millisecond precision in UTC.
	RFC3339Millis = "2006-01-02T15:04:05.000Z"

	// RFC3339Micros formats timestamps with microsecond precision in UTC.
	RFC3339Micros = "2006-01-02T15:04:05.000000Z"
)

// Time wraps time.Time with API wire formats: RFC 3339 with millisecond
// precision for JSON, and CBOR tag 0 (RFC 8949) for CBOR.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// MarshalJSON renders the timestamp as a quoted RFC 3339 millisecond string in UTC.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

// UnmarshalJSON accepts RFC 3339 strings with any sub-second precision.
// A JSON null leaves the existing value untouched.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timeutil: invalid time literal %s", s)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("timeutil: parse time: %w", err)
	}
	t.Time = parsed
	return nil
}

// MarshalCBOR encodes the timestamp as CBOR tag 0 (standard date/time string).
func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  0,
		Content: t.UTC().Format(RFC3339Millis),
	})
}

// UnmarshalCBOR decodes a CBOR tag 0 or tag 1 timestamp.
func (t *Time) UnmarshalCBOR(data []byte) error {
	var parsed time.Time
	if err := cbor.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("timeutil: decode cbor time: %w", err)
	}
	t.Time = parsed
	return nil
}
