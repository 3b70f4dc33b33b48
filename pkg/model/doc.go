// Package model describes the base objects manipulated by revmon.
//
// The package exposes plain value descriptors and their line-oriented text encoding.
//
// The object model for revmon is composed of:
//
//  Revisions:
//    A revision is a versioned artifact instance, a vertex in a revision graph.
//    Revision ids are unique across a whole system.
//
//  Edges:
//    A SUCCESSOR edge records direct temporal precedence between two revisions.
//    A MERGE edge records the least common ancestor of a two-parent join.
//
//  Graphs:
//    A revision graph is a rooted DAG of revisions, analogous to the history of a git repo.
//
//  Relations:
//    A directed pointer between two revisions, possibly in different graphs.
//
//  Projections:
//    A named artifact computed from several source revisions, possibly spanning graphs.
//
//  Regions:
//    The result of a query describing the revisions surrounding a given one along an axis.
//    Regions are never persisted.
//
// Every descriptor serializes to one or more lines whose fields are separated by ';'.
package model
