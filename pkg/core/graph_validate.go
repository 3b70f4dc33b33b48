package core

import (
	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/model"
	"go.uber.org/multierr"
)

// Validate checks the structural invariants of the graph.
//
// Checks run in order and stop at the first violated invariant. Within a single invariant, all
// offending revisions are reported.
//
// Cycles are only searched up to depth hops.
func (g *revisionGraph) Validate(depth int) error {
	for _, check := range []func() error{
		g.checkUniqueRevisions,
		g.checkRoot,
		g.checkIncomingSuccessors,
		g.checkIncomingMerges,
		g.checkRecordedMerges,
		func() error { return g.checkCycles(depth) },
		g.checkGraphID,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// checkUniqueRevisions looks at revision values: a graph store is not bound to key its vertices by revision id
func (g *revisionGraph) checkUniqueRevisions() error {
	var err error
	seen := make(map[string]struct{}, g.store.Len())
	for _, r := range g.Revisions() {
		if _, ok := seen[r.ID]; ok {
			err = multierr.Append(err, status.ErrDuplicateRevision.Wrapf("revision %q in graph %q", r.ID, g.id))
			continue
		}
		seen[r.ID] = struct{}{}
	}
	return err
}

func (g *revisionGraph) checkRoot() error {
	if g.store.Len() == 0 {
		return nil
	}
	_, err := g.Root()
	return err
}

func (g *revisionGraph) checkIncomingSuccessors() error {
	var err error
	for _, r := range g.store.Vertices() {
		if n := len(g.store.InEdges(r.ID, successor)); n > 2 {
			err = multierr.Append(err, status.ErrTooManySuccessors.Wrapf("revision %q in graph %q has %d", r.ID, g.id, n))
		}
	}
	return err
}

func (g *revisionGraph) checkIncomingMerges() error {
	var err error
	for _, r := range g.store.Vertices() {
		if n := len(g.store.InEdges(r.ID, merge)); n > 1 {
			err = multierr.Append(err, status.ErrTooManyMerges.Wrapf("revision %q in graph %q has %d", r.ID, g.id, n))
		}
	}
	return err
}

func (g *revisionGraph) checkRecordedMerges() error {
	var err error
	for _, r := range g.store.Vertices() {
		if len(g.store.InEdges(r.ID, successor)) != 2 {
			continue
		}
		if n := len(g.store.InEdges(r.ID, merge)); n != 1 {
			err = multierr.Append(err, status.ErrUnrecordedMerge.Wrapf("revision %q in graph %q has %d merge edges", r.ID, g.id, n))
		}
	}
	return err
}

func (g *revisionGraph) checkCycles(depth int) error {
	if id, found := g.findCycle(depth); found {
		return status.ErrCycle.Wrapf("revision %q in graph %q is on a cycle of length at most %d", id, g.id, depth)
	}
	return nil
}

func (g *revisionGraph) findCycle(depth int) (string, bool) {
	ids := make([]string, 0, g.store.Len())
	for _, r := range g.store.Vertices() {
		ids = append(ids, r.ID)
	}
	return findCycle(ids, func(id string) []string {
		edges := g.store.OutEdges(id, successor, merge)
		targets := make([]string, 0, len(edges))
		for _, e := range edges {
			targets = append(targets, e.Target)
		}
		return targets
	}, depth)
}

// findCycle looks for a vertex reachable from itself in at most depth hops
func findCycle(ids []string, next func(string) []string, depth int) (string, bool) {
	for _, start := range ids {
		frontier := map[string]struct{}{start: {}}
		for step := 0; step < depth && len(frontier) > 0; step++ {
			reached := make(map[string]struct{})
			for id := range frontier {
				for _, target := range next(id) {
					if target == start {
						return start, true
					}
					reached[target] = struct{}{}
				}
			}
			frontier = reached
		}
	}
	return "", false
}

func (g *revisionGraph) checkGraphID() error {
	var err error
	for _, r := range g.store.Vertices() {
		if r.GraphID != g.id {
			err = multierr.Append(err, status.ErrGraphIDMismatch.Wrapf("revision %q declares graph %q, owned by %q", r.ID, r.GraphID, g.id))
		}
	}
	return err
}

// HasCycles tells if a cycle of at most depth hops exists in a graph,
// following SUCCESSOR and MERGE edges
func HasCycles(g RevisionGraph, depth int) bool {
	if rg, ok := g.(*revisionGraph); ok {
		_, found := rg.findCycle(depth)
		return found
	}
	adjacency := make(map[string][]string)
	for _, e := range g.Edges() {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}
	_, found := findCycle(model.Revisions(g.Revisions()).IDs(), func(id string) []string { return adjacency[id] }, depth)
	return found
}
