package models

import "time"

// TimeFormat is how timestamps are stored in the database. The width is
// fixed (nanoseconds always padded) so UTC values sort correctly as text.
const TimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t for storage, always in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime reads a stored timestamp back. Values written by older tools
// in plain RFC 3339 are accepted too.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeFormat, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
