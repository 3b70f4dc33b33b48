package core

import (
	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/model"
)

var (
	successor        = string(model.Successor)
	merge            = string(model.Merge)
	inverseSuccessor = string(model.Successor.Inverse())
	inverseMerge     = string(model.Merge.Inverse())
)

func (g *revisionGraph) roots() []model.Revision {
	var roots []model.Revision
	for _, r := range g.store.Vertices() {
		if len(g.store.InEdges(r.ID, successor)) == 0 {
			roots = append(roots, r)
		}
	}
	return roots
}

// Root is the only revision without any incoming SUCCESSOR edge
func (g *revisionGraph) Root() (model.Revision, error) {
	roots := g.roots()
	if len(roots) != 1 {
		return model.Revision{}, status.ErrRootCount.Wrapf("graph %q has %d roots", g.id, len(roots))
	}
	return roots[0], nil
}

// Leaves are the revisions without any outgoing SUCCESSOR edge
func (g *revisionGraph) Leaves() []model.Revision {
	leaves := make([]model.Revision, 0)
	for _, r := range g.store.Vertices() {
		if len(g.store.OutEdges(r.ID, successor)) == 0 {
			leaves = append(leaves, r)
		}
	}
	return leaves
}

// PathToRoot walks the history backward from a revision, up to pathLength hops or up to the root
// when pathLength is model.Unbounded.
//
// A revision with an incoming MERGE edge steps directly to the source of that edge, that is,
// to the least common ancestor of the branches it joins.
func (g *revisionGraph) PathToRoot(id string, pathLength int) ([]model.Revision, error) {
	if err := model.ValidateDepth(pathLength); err != nil {
		return nil, err
	}
	start, err := g.Revision(id)
	if err != nil {
		return nil, err
	}
	path := []model.Revision{start}
	if pathLength == 0 {
		return path, nil
	}
	root, err := g.Root()
	if err != nil {
		return nil, err
	}

	visited := map[string]struct{}{start.ID: {}}
	for current := start; current.ID != root.ID; {
		if pathLength != model.Unbounded && len(path) > pathLength {
			break
		}
		next, ok := g.predecessor(current.ID)
		if !ok {
			return nil, status.ErrMissingPredecessor.Wrapf("revision %q in graph %q", current.ID, g.id)
		}
		if _, seen := visited[next]; seen {
			return nil, status.ErrCycle.Wrapf("revision %q is visited twice on the path to root of %q", next, id)
		}
		visited[next] = struct{}{}
		if current, err = g.Revision(next); err != nil {
			return nil, err
		}
		path = append(path, current)
	}
	return path, nil
}

// predecessor prefers the merge short-cut over the successor edge
func (g *revisionGraph) predecessor(id string) (string, bool) {
	if edges := g.store.OutEdges(id, inverseMerge); len(edges) > 0 {
		return edges[0].Target, true
	}
	if edges := g.store.OutEdges(id, inverseSuccessor); len(edges) > 0 {
		return edges[0].Target, true
	}
	return "", false
}

// Neighbors are the leaves of all the branches forking from the ancestor found depth hops back,
// together with the revision itself.
func (g *revisionGraph) Neighbors(id string, depth int) ([]model.Revision, error) {
	path, err := g.PathToRoot(id, depth)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		return path, nil
	}
	ancestor := path[len(path)-1]
	neighbors := append(g.leavesFrom(ancestor.ID), path[0])
	return dedupe(neighbors), nil
}

// leavesFrom collects the leaves reachable from a revision following SUCCESSOR edges,
// not including the revision itself
func (g *revisionGraph) leavesFrom(id string) []model.Revision {
	var leaves []model.Revision
	visited := map[string]struct{}{id: {}}
	stack := []string{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.store.OutEdges(current, successor) {
			if _, seen := visited[e.Target]; seen {
				continue
			}
			visited[e.Target] = struct{}{}
			if len(g.store.OutEdges(e.Target, successor)) == 0 {
				r, _ := g.store.Vertex(e.Target)
				leaves = append(leaves, r)
				continue
			}
			stack = append(stack, e.Target)
		}
	}
	return leaves
}

// LeastCommonAncestor is the first revision on the path to root of idA which is also
// on the path to root of idB
func (g *revisionGraph) LeastCommonAncestor(idA, idB string) (model.Revision, error) {
	pathA, err := g.PathToRoot(idA, model.Unbounded)
	if err != nil {
		return model.Revision{}, err
	}
	pathB, err := g.PathToRoot(idB, model.Unbounded)
	if err != nil {
		return model.Revision{}, err
	}
	onB := make(map[string]struct{}, len(pathB))
	for _, r := range pathB {
		onB[r.ID] = struct{}{}
	}
	for _, r := range pathA {
		if _, ok := onB[r.ID]; ok {
			return r, nil
		}
	}
	return model.Revision{}, status.ErrNotFound.Wrapf("no common ancestor of %q and %q in graph %q", idA, idB, g.id)
}

func dedupe(revisions []model.Revision) []model.Revision {
	seen := make(map[string]struct{}, len(revisions))
	res := revisions[:0]
	for _, r := range revisions {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		res = append(res, r)
	}
	return res
}
