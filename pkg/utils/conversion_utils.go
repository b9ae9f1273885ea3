package utils

import "strconv"

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// StrToInt64 converts a string to an int64.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ParsePositiveInt returns fallback unless s is a positive integer.
// Query parameters such as page and limit go through here.
func ParsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// ParseOptionalInt64 returns nil for an empty or malformed value.
func ParseOptionalInt64(s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
