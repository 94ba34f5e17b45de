// Package testutil provides a harness for integration tests: it writes graph
// files into a temporary directory, runs the whole application against them
// and exposes the output, the logs and the resulting registry.
package testutil
