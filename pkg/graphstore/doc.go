// Package graphstore provides the storage of a directed, labeled multigraph.
//
// Vertices are keyed by a string id and carry a value. Edges are (source, target, label)
// triples: parallel edges with distinct labels are allowed, and so are duplicates.
//
// Enumerations are deterministic: vertices and edges are returned in insertion order.
package graphstore
