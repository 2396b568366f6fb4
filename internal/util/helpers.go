package util

import "strconv"

// FormatBool stores a boolean preference as "1" or "0".
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ParseBool reads a stored boolean preference, falling back on garbage.
func ParseBool(s string, fallback bool) bool {
	switch s {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	return fallback
}

// ParseIntOr parses s, returning fallback when s is not an integer.
func ParseIntOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// Clamp constrains a value to a range.
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
