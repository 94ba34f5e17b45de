// internal/statid/parser.go
package statid

import (
	"fmt"
	"regexp"
	"strings"
)

// partRegex restricts each part of a name to a conservative character set.
var partRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// prefixRegex is stricter: prefixes never contain separators.
var prefixRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Parse creates a Name by parsing its canonical string representation.
func Parse(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("stat name cannot be empty")
	}

	owner, field, scoped := strings.Cut(raw, fieldSeparator)
	if !scoped {
		if !partRegex.MatchString(raw) {
			return Name{}, fmt.Errorf("invalid global stat name: %q", raw)
		}
		return Global(raw), nil
	}

	if field == "" {
		return Name{}, fmt.Errorf("stat name %q has an empty field", raw)
	}
	if !partRegex.MatchString(field) {
		return Name{}, fmt.Errorf("invalid field in stat name %q: %q", raw, field)
	}

	prefix, entity, ok := strings.Cut(owner, prefixSeparator)
	if !ok || prefix == "" || entity == "" {
		return Name{}, fmt.Errorf("stat name %q must have the form <prefix>_<entity>__<field>", raw)
	}
	if !prefixRegex.MatchString(prefix) {
		return Name{}, fmt.Errorf("invalid prefix in stat name %q: %q", raw, prefix)
	}
	if !partRegex.MatchString(entity) {
		return Name{}, fmt.Errorf("invalid entity in stat name %q: %q", raw, entity)
	}

	return New(prefix, entity, field), nil
}
