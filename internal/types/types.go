package types

import "time"

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr converts an int64 to a pointer to an int64
func Int64Ptr(n int64) *int64 {
	return &n
}

// IntPtr converts an int to a pointer to an int
func IntPtr(n int) *int {
	return &n
}

// TimePtr converts a time to a pointer to a time
func TimePtr(t time.Time) *time.Time {
	return &t
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringNilOrEmpty checks if a pointer to a string is nil or empty
func StringNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// SameString reports whether two string pointers carry the same value,
// treating nil and empty as equal
func SameString(a, b *string) bool {
	return SafeString(a) == SafeString(b)
}

// DateOf truncates a timestamp to its UTC calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
