// internal/statid/types.go
package statid

// fieldSeparator splits the owning entity from the field name.
const fieldSeparator = "__"

// prefixSeparator splits the domain prefix from the entity identifier.
const prefixSeparator = "_"

// Name is the structured representation of a unique stat name.
type Name struct {
	Prefix string // empty for global names
	Entity string // empty for global names
	Field  string
}

// Global creates a name for a stat that is not owned by any entity.
func Global(field string) Name {
	return Name{Field: field}
}

// New creates an entity-scoped name.
func New(prefix, entity, field string) Name {
	return Name{Prefix: prefix, Entity: entity, Field: field}
}

// IsGlobal reports whether the name has no owning entity.
func (n Name) IsGlobal() bool {
	return n.Prefix == "" && n.Entity == ""
}

// Owner returns the `<prefix>_<entity>` part of an entity-scoped name, or an
// empty string for global names.
func (n Name) Owner() string {
	if n.IsGlobal() {
		return ""
	}
	return n.Prefix + prefixSeparator + n.Entity
}
