package armutil

import (
	"fmt"
	"strings"
)

// ParseEnum matches raw against an ARM enum's possible values, ignoring
// case. what names the flag in the error message.
func ParseEnum[T ~string](raw, what string, values []T) (T, error) {
	for _, v := range values {
		if strings.EqualFold(string(v), raw) {
			return v, nil
		}
	}
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (expected one of: %s)", what, raw, strings.Join(names, ", "))
}
