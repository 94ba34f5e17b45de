// Package app contains the core application logic. It loads a graph
// definition, builds the live registry, applies the requested mutations
// (directly or as a hypothetical preview) and reports the result, decoupled
// from any specific entrypoint like a CLI or server.
package app
