// internal/statid/doc.go

/*
Package statid provides a structured representation for stat names within a
registry, based on the canonical format `<prefix>_<entity>__<field>`.

Entity-scoped names look like `bld_12__clutter_generation` or
`chr_7__strength`: a short domain prefix, the entity identifier and the field
name, with a double underscore separating the owner from the field. Names
without the double underscore are global aggregates such as
`total_buildings_clutter`.

This package centralizes all formatting and parsing of stat names so that the
entity systems and debug tooling agree on a single convention.
*/
package statid
