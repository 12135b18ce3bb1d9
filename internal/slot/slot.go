// Package slot implements the strict delimiter splitting shared by every
// record and date grammar: a value must split into an exact number of
// slots, and every slot is trimmed of surrounding whitespace.
package slot

import "strings"

// Error is a structural parse failure. Reason is a short static string
// naming the violated slot or format.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Errorf builds an *Error from a static reason.
func Errorf(reason string) error {
	return &Error{Reason: reason}
}

// Split splits value on sep and requires exactly one slot per name.
func Split(value, sep string, names ...string) ([]string, error) {
	return SplitUpTo(value, sep, len(names), names...)
}

// SplitUpTo splits value on sep and requires between required and
// len(names) slots. Missing slots are reported by name, surplus ones as
// an extra separator. The returned slots are trimmed.
func SplitUpTo(value, sep string, required int, names ...string) ([]string, error) {
	parts := strings.Split(value, sep)
	if len(parts) < required {
		return nil, Errorf("missing '" + names[len(parts)] + "' slot")
	}
	if len(parts) > len(names) {
		return nil, Errorf("extra '" + sep + "' found")
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}
