package db

import (
	"fmt"
	"time"
)

// Stable, locale-independent encodings. Changing either format would silently
// misparse historical records, so both are frozen.
const (
	dateFormat = "2006-01-02"
	timeFormat = time.RFC3339
)

// EncodeDate serializes a calendar date for storage.
func EncodeDate(t time.Time) string {
	return t.Format(dateFormat)
}

// DecodeDate parses a stored calendar date.
func DecodeDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode date %q: %w", s, err)
	}
	return t, nil
}

// EncodeTime serializes a timestamp for storage at second precision or better.
func EncodeTime(t time.Time) string {
	return t.Format(timeFormat)
}

// DecodeTime parses a stored timestamp.
func DecodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp %q: %w", s, err)
	}
	return t, nil
}
