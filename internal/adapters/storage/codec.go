package storage

import (
	"database/sql"
	"time"
)

// TimeLayout is how timestamps are stored in TEXT columns.
const TimeLayout = "2006-01-02T15:04:05Z07:00"

// DateLayout is used for date-only columns.
const DateLayout = "2006-01-02"

// FormatTime renders t for storage in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// NullableTime returns nil for the zero time so the column stores NULL.
func NullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return FormatTime(t)
}

// ParseTime reads a stored timestamp. Unparseable or empty values become the
// zero time.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

// ParseNullTime reads a nullable timestamp column.
func ParseNullTime(ns sql.NullString) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return ParseTime(ns.String)
}

// BoolToInt maps a bool onto SQLite's integer booleans.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
