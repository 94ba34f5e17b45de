/*
Package builder turns a config.Model into a live stat registry.

Construction happens in three phases:

 1. Topology validation: every declared stat becomes a node of a dag.Graph
    and every connection an edge. A cycle rejects the whole definition,
    because the first value change flowing around it would fail anyway.

 2. Stat creation: stats are created through the engine in declaration
    order, so each one is registered with its initial value.

 3. Connection replay: connections are replayed through the engine in
    declaration order. Each one is applied immediately, so targets reflect
    the current values of their sources once Build returns.

Configuration errors raised by the engine (duplicate names, incompatible
targets, missing inputs) do not stop construction: the offending stat or
connection is skipped and the errors are returned joined together alongside
the registry. Any other error, such as a connection naming a stat that was
never declared, aborts the build.
*/
package builder
