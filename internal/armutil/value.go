package armutil

import "strings"

// Value dereferences p, returning the zero value when p is nil. SDK models
// expose every field as a pointer, so reads go through this constantly.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Strings flattens a pointer slice, dropping nils.
func Strings(ps []*string) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// JoinStrings renders a pointer slice for table cells.
func JoinStrings(ps []*string, sep string) string {
	return strings.Join(Strings(ps), sep)
}
