// Package armutil provides the small amount of genuine logic shared by every
// resource command: manipulating the named child collections embedded in ARM
// resource payloads, and building or picking apart ARM resource IDs.
package armutil

import (
	"fmt"

	"nathanbeddoewebdev/aznet/internal/util"
)

// UpsertByName inserts item into list, replacing any existing element that
// shares its name. Names compare case-insensitively, matching how the
// service treats child resource names. The returned bool reports whether an
// existing element was displaced; callers surface a replacement warning when
// it is set. The input slice is never mutated.
//
// Replaced elements lose their original position: the new item is always
// appended at the end, which is also where the service round-trips it.
func UpsertByName[T any](list []*T, item *T, nameOf func(*T) *string) ([]*T, bool) {
	name := Value(nameOf(item))
	out := make([]*T, 0, len(list)+1)
	replaced := false

	for _, existing := range list {
		if existing != nil && name != "" && util.EqualFold(Value(nameOf(existing)), name) {
			replaced = true
			continue
		}
		out = append(out, existing)
	}

	return append(out, item), replaced
}

// FindByName returns the element of list whose name matches, comparing
// case-insensitively. kind names the child resource in the error when no
// element matches.
func FindByName[T any](list []*T, kind, name string, nameOf func(*T) *string) (*T, error) {
	for _, item := range list {
		if item != nil && util.EqualFold(Value(nameOf(item)), name) {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%s %q not found", kind, name)
}

// RemoveByName filters out every element whose accessor value matches,
// comparing case-insensitively. The accessor usually yields names but works
// equally for resource IDs. Survivor order is preserved and the input slice
// is never mutated.
func RemoveByName[T any](list []*T, name string, nameOf func(*T) *string) ([]*T, bool) {
	out := make([]*T, 0, len(list))
	removed := false

	for _, existing := range list {
		if existing != nil && util.EqualFold(Value(nameOf(existing)), name) {
			removed = true
			continue
		}
		out = append(out, existing)
	}

	return out, removed
}
