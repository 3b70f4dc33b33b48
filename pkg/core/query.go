package core

import (
	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/model"
)

// GraphQuery computes regions within a single revision graph
type GraphQuery struct {
	graph RevisionGraph
}

// NewGraphQuery builds a query interface over a revision graph
func NewGraphQuery(g RevisionGraph) *GraphQuery {
	return &GraphQuery{graph: g}
}

// FindRegion computes the TIME or SPACE region around a revision.
//
// TIME collects the path to root, SPACE the neighbors, both up to depth hops (or model.Unbounded).
func (q *GraphQuery) FindRegion(revisionID string, axis model.Axis, depth int) (model.Region, error) {
	if err := model.ValidateDepth(depth); err != nil {
		return model.Region{}, err
	}
	var (
		participants []model.Revision
		err          error
	)
	switch axis {
	case model.Time:
		participants, err = q.graph.PathToRoot(revisionID, depth)
	case model.Space:
		participants, err = q.graph.Neighbors(revisionID, depth)
	default:
		return model.Region{}, status.ErrInvalidArgument.Wrapf("region axis %s is not supported on a single graph", axis)
	}
	if err != nil {
		return model.Region{}, err
	}
	return model.NewRegion(axis, model.Cardinality(depth), participants), nil
}

// Root revision of the graph
func (q *GraphQuery) Root() (model.Revision, error) {
	return q.graph.Root()
}

// Revisions of the graph
func (q *GraphQuery) Revisions() []model.Revision {
	return q.graph.Revisions()
}

// Edges of the graph
func (q *GraphQuery) Edges() []model.Edge {
	return q.graph.Edges()
}

// AddRevision adds a revision to the graph, without validation
func (q *GraphQuery) AddRevision(r model.Revision) error {
	return q.graph.AddRevision(r)
}

// AddEdge adds an edge to the graph, without validation
func (q *GraphQuery) AddEdge(e model.Edge) error {
	return q.graph.AddEdge(e)
}

// RemoveRevision removes a revision from the graph, without validation
func (q *GraphQuery) RemoveRevision(id string) error {
	return q.graph.RemoveRevision(id)
}

// RemoveEdge removes an edge from the graph, without validation
func (q *GraphQuery) RemoveEdge(e model.Edge) error {
	return q.graph.RemoveEdge(e)
}
