// Package config defines the format-agnostic description of a stat graph:
// the stats to create and the connections to replay between them. Concrete
// loaders, such as the HCL one, live in separate packages and produce a
// config.Model; the builder package turns a Model into a live registry.
package config
