// internal/statid/name.go
package statid

import "strings"

// String serializes the Name into its canonical string representation.
func (n Name) String() string {
	if n.IsGlobal() {
		return n.Field
	}

	var sb strings.Builder
	sb.WriteString(n.Prefix)
	sb.WriteString(prefixSeparator)
	sb.WriteString(n.Entity)
	sb.WriteString(fieldSeparator)
	sb.WriteString(n.Field)
	return sb.String()
}
