package core

import (
	"fmt"
	"strings"

	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/graphstore"
	"github.com/oneconcern/revmon/pkg/model"
)

// RevisionGraph is a single revision history: a DAG of revisions linked by SUCCESSOR and MERGE edges.
//
// Mutations do not check the structural invariants of the graph: several mutations may be applied
// as a batch, then Validate is called.
type RevisionGraph interface {
	GraphID() string

	HasRevision(id string) bool
	HasEdge(model.Edge) bool
	Revision(id string) (model.Revision, error)
	Revisions() []model.Revision
	Edges() []model.Edge

	AddRevision(model.Revision) error
	AddEdge(model.Edge) error
	RemoveRevision(id string) error
	RemoveEdge(model.Edge) error
	AddRevisionWithUnification(revision model.Revision, edgeA, edgeB model.Edge) error

	Root() (model.Revision, error)
	Leaves() []model.Revision
	PathToRoot(id string, pathLength int) ([]model.Revision, error)
	Neighbors(id string, depth int) ([]model.Revision, error)
	LeastCommonAncestor(idA, idB string) (model.Revision, error)

	Validate(depth int) error
	Describe() model.GraphDescriptor
	Clone() RevisionGraph
	String() string
}

// GraphFactory builds an empty revision graph
type GraphFactory func(graphID string) RevisionGraph

var _ GraphFactory = NewGraph

// revisionGraph implements RevisionGraph on top of a graphstore.Store.
//
// Every edge is stored along with an inverse twin, used to walk the history backward.
type revisionGraph struct {
	id    string
	store graphstore.Store[model.Revision]
}

// NewGraph builds an empty revision graph, kept in memory
func NewGraph(graphID string) RevisionGraph {
	return NewGraphOnStore(graphID, graphstore.NewMemory[model.Revision]())
}

// NewGraphOnStore builds a revision graph on an empty graph store
func NewGraphOnStore(graphID string, store graphstore.Store[model.Revision]) RevisionGraph {
	return &revisionGraph{
		id:    graphID,
		store: store,
	}
}

// BuildGraph builds a revision graph from its descriptor.
//
// The graph is not validated.
func BuildGraph(descriptor model.GraphDescriptor, opts ...Option) (RevisionGraph, error) {
	settings := defaultSettings()
	for _, apply := range opts {
		apply(&settings)
	}
	return buildGraph(descriptor, settings.graphFactory)
}

func buildGraph(descriptor model.GraphDescriptor, factory GraphFactory) (RevisionGraph, error) {
	if err := model.ValidateGraphID(descriptor.ID); err != nil {
		return nil, err
	}
	g := factory(descriptor.ID)
	for _, r := range descriptor.Revisions {
		if err := g.AddRevision(r); err != nil {
			return nil, err
		}
	}
	for _, e := range descriptor.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *revisionGraph) GraphID() string {
	return g.id
}

func (g *revisionGraph) HasRevision(id string) bool {
	return g.store.HasVertex(id)
}

func (g *revisionGraph) HasEdge(e model.Edge) bool {
	return g.store.HasEdge(toStored(e))
}

func (g *revisionGraph) Revision(id string) (model.Revision, error) {
	r, ok := g.store.Vertex(id)
	if !ok {
		return model.Revision{}, status.ErrNotFound.Wrapf("revision %q in graph %q", id, g.id)
	}
	return r, nil
}

func (g *revisionGraph) Revisions() []model.Revision {
	return g.store.Vertices()
}

// Edges of the graph, leaving out inverse edges
func (g *revisionGraph) Edges() []model.Edge {
	return fromStored(g.store.Edges(string(model.Successor), string(model.Merge)))
}

func (g *revisionGraph) AddRevision(r model.Revision) error {
	if err := model.ValidateRevision(r); err != nil {
		return err
	}
	if r.GraphID != g.id {
		return status.ErrInvalidArgument.Wrapf("revision %q belongs to graph %q, not to %q", r.ID, r.GraphID, g.id)
	}
	return g.store.AddVertex(r.ID, r)
}

func (g *revisionGraph) AddEdge(e model.Edge) error {
	if err := model.ValidateEdge(e); err != nil {
		return err
	}
	for _, id := range []string{e.Source, e.Target} {
		if !g.store.HasVertex(id) {
			return status.ErrNotFound.Wrapf("revision %q in graph %q: cannot add edge %s", id, g.id, e.Serialize())
		}
	}
	if err := g.store.AddEdge(toStored(e)); err != nil {
		return err
	}
	return g.store.AddEdge(inverseOf(e))
}

// RemoveRevision removes a revision with all the edges touching it
func (g *revisionGraph) RemoveRevision(id string) error {
	if !g.store.HasVertex(id) {
		return status.ErrNotFound.Wrapf("revision %q in graph %q", id, g.id)
	}
	return g.store.RemoveVertex(id)
}

// RemoveEdge removes an edge with its inverse twin
func (g *revisionGraph) RemoveEdge(e model.Edge) error {
	if !g.store.RemoveEdge(toStored(e)) {
		return status.ErrNotFound.Wrapf("edge %s in graph %q", e.Serialize(), g.id)
	}
	_ = g.store.RemoveEdge(inverseOf(e))
	return nil
}

// AddRevisionWithUnification adds a revision joining two branches.
//
// Both edges must be SUCCESSOR edges pointing to the new revision. A MERGE edge is recorded
// from the least common ancestor of the two predecessors.
func (g *revisionGraph) AddRevisionWithUnification(r model.Revision, edgeA, edgeB model.Edge) error {
	if edgeA.Target != r.ID || edgeB.Target != r.ID {
		return status.ErrInvalidArgument.Wrapf("unification edges must target revision %q, got %s and %s", r.ID, edgeA.Serialize(), edgeB.Serialize())
	}
	if edgeA.Label != model.Successor || edgeB.Label != model.Successor {
		return status.ErrInvalidArgument.Wrapf("unification edges must be %s edges, got %s and %s", model.Successor, edgeA.Serialize(), edgeB.Serialize())
	}
	lca, err := g.LeastCommonAncestor(edgeA.Source, edgeB.Source)
	if err != nil {
		return err
	}
	if err = g.AddRevision(r); err != nil {
		return err
	}
	for _, e := range []model.Edge{edgeA, edgeB, model.NewMerge(lca.ID, r.ID)} {
		if err = g.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}

func (g *revisionGraph) Describe() model.GraphDescriptor {
	return model.GraphDescriptor{
		ID:        g.id,
		Revisions: g.Revisions(),
		Edges:     g.Edges(),
	}
}

func (g *revisionGraph) Clone() RevisionGraph {
	return &revisionGraph{
		id:    g.id,
		store: g.store.Clone(),
	}
}

// String prints all edges, inverse edges included, one per line
func (g *revisionGraph) String() string {
	edges := g.store.Edges()
	lines := make([]string, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, fmt.Sprintf("%q -%s-> %q", e.Source, e.Label, e.Target))
	}
	return strings.Join(lines, "\n")
}

func toStored(e model.Edge) graphstore.Edge {
	return graphstore.Edge{Source: e.Source, Target: e.Target, Label: string(e.Label)}
}

func inverseOf(e model.Edge) graphstore.Edge {
	return graphstore.Edge{Source: e.Target, Target: e.Source, Label: string(e.Label.Inverse())}
}

func fromStored(edges []graphstore.Edge) []model.Edge {
	res := make([]model.Edge, 0, len(edges))
	for _, e := range edges {
		res = append(res, model.Edge{Source: e.Source, Target: e.Target, Label: model.EdgeLabel(e.Label)})
	}
	return res
}
