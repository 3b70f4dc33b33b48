/*
Package revmon provides a library and CLI tooling to track how artifacts evolve across repositories.

Each repository history is a revision graph: revisions succeed one another, and
branches are joined by explicit merges. Relations point across graphs, and
projections name artifacts computed from revisions of several graphs.

The core library lives in pkg/core, the CLI in cmd/revmon.
*/
package revmon
