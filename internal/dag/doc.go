// Package dag holds a plain directed graph of stat names. The builder uses it
// to reject cyclic graph definitions before any connection is replayed, and
// tooling uses it to answer upstream and downstream queries.
package dag
