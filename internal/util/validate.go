package util

import (
	"fmt"
	"regexp"
)

// validNameChars matches only alphanumeric characters, underscores, hyphens,
// and periods.
var validNameChars = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)

// ValidateResourceName checks that a name conforms to the naming rules shared
// by most ARM resource types:
//   - Between 1 and 80 characters
//   - Only alphanumeric characters (a-z, A-Z, 0-9), underscores (_),
//     hyphens (-), and periods (.)
//   - First character must be alphanumeric or an underscore
//   - Last character must not be a hyphen or period
func ValidateResourceName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("resource name must not be empty")
	}
	if len(name) > 80 {
		return fmt.Errorf("resource name must be at most 80 characters, got %d", len(name))
	}

	if !validNameChars.MatchString(name) {
		return fmt.Errorf("resource name %q contains invalid characters (only a-z, A-Z, 0-9, underscores, hyphens, and periods are allowed)", name)
	}

	first := name[0]
	if !isAlphanumeric(first) && first != '_' {
		return fmt.Errorf("resource name must start with an alphanumeric character or underscore, got %q", string(first))
	}

	last := name[len(name)-1]
	if last == '-' || last == '.' {
		return fmt.Errorf("resource name must not end with a hyphen or period, got %q", string(last))
	}

	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
