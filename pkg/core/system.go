package core

import (
	"sync"

	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/model"
	"go.uber.org/zap"
)

// System holds several revision graphs, with relations and projections between their revisions.
//
// A System is safe for concurrent use: a single lock guards graphs, relations and projections.
//
// Unless SkipValidation is specified, a mutation which leaves the system invalid is rolled back
// and the validation error is returned.
type System struct {
	mu          sync.RWMutex
	graphs      []RevisionGraph
	relations   []model.Relation
	projections []model.Projection

	settings Settings
	l        *zap.Logger
}

// New builds an empty system
func New(opts ...Option) *System {
	settings := defaultSettings()
	for _, apply := range opts {
		apply(&settings)
	}
	return &System{
		settings: settings,
		l:        settings.logger,
	}
}

// GraphIDs lists the ids of all graphs, in the order they were added
func (s *System) GraphIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.graphs))
	for _, g := range s.graphs {
		ids = append(ids, g.GraphID())
	}
	return ids
}

// Graph returns a copy of a revision graph. Mutating the copy does not affect the system.
func (s *System) Graph(graphID string) (RevisionGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.graph(graphID)
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

// Relations of the system
func (s *System) Relations() []model.Relation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Relation{}, s.relations...)
}

// Projections of the system
func (s *System) Projections() []model.Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyProjections(s.projections)
}

func (s *System) graph(graphID string) (RevisionGraph, error) {
	for _, g := range s.graphs {
		if g.GraphID() == graphID {
			return g, nil
		}
	}
	return nil, status.ErrNotFound.Wrapf("graph %q", graphID)
}

// owner finds the graph holding a revision
func (s *System) owner(revisionID string) (RevisionGraph, error) {
	for _, g := range s.graphs {
		if g.HasRevision(revisionID) {
			return g, nil
		}
	}
	return nil, status.ErrNotFound.Wrapf("revision %q", revisionID)
}

func (s *System) findRevision(revisionID string) (model.Revision, error) {
	g, err := s.owner(revisionID)
	if err != nil {
		return model.Revision{}, err
	}
	return g.Revision(revisionID)
}

func (s *System) hasRevision(revisionID string) bool {
	_, err := s.owner(revisionID)
	return err == nil
}

// FindRevision locates a revision in any graph
func (s *System) FindRevision(revisionID string) (model.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findRevision(revisionID)
}

// FindEdges lists the edges touching a revision
func (s *System) FindEdges(revisionID string) ([]model.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.owner(revisionID)
	if err != nil {
		return nil, err
	}
	edges := make([]model.Edge, 0)
	for _, e := range g.Edges() {
		if e.Source == revisionID || e.Target == revisionID {
			edges = append(edges, e)
		}
	}
	return edges, nil
}

// FindRelations lists the relations from or to a revision
func (s *System) FindRelations(revisionID string) ([]model.Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.owner(revisionID); err != nil {
		return nil, err
	}
	relations := make([]model.Relation, 0)
	for _, r := range s.relations {
		if r.Touches(revisionID) {
			relations = append(relations, r)
		}
	}
	return relations, nil
}

// FindProjections lists the projections fed by a revision
func (s *System) FindProjections(revisionID string) ([]model.Projection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.owner(revisionID); err != nil {
		return nil, err
	}
	return s.projectionsFedBy(revisionID), nil
}

func (s *System) projectionsFedBy(revisionID string) []model.Projection {
	projections := make([]model.Projection, 0)
	for _, p := range s.projections {
		if p.HasSource(revisionID) {
			projections = append(projections, p)
		}
	}
	return copyProjections(projections)
}

// FindLocalRegion computes a TIME or SPACE region within a graph
func (s *System) FindLocalRegion(graphID, revisionID string, axis model.Axis, depth int) (model.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !axis.IsLocal() {
		return model.Region{}, status.ErrInvalidArgument.Wrapf("region axis %s is not supported by a local region query", axis)
	}
	g, err := s.graph(graphID)
	if err != nil {
		return model.Region{}, err
	}
	s.settings.metrics.query(string(axis))
	return NewGraphQuery(g).FindRegion(revisionID, axis, depth)
}

// FindGlobalRegion computes a RELATIONAL or PROJECTIVE region across graphs.
//
// A RELATIONAL region holds the revision and the targets of the relations starting from it.
// A PROJECTIVE region holds one synthetic revision per projection fed by the revision.
// The cardinality of global regions is always 0.
func (s *System) FindGlobalRegion(revisionID string, axis model.Axis) (model.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch axis {
	case model.Relational:
		s.settings.metrics.query(string(axis))
		ids := []string{revisionID}
		for _, r := range s.relations {
			if r.FromRevision == revisionID {
				ids = append(ids, r.ToRevision)
			}
		}
		participants := make([]model.Revision, 0, len(ids))
		for _, id := range ids {
			r, err := s.findRevision(id)
			if err != nil {
				return model.Region{}, err
			}
			participants = append(participants, r)
		}
		return model.NewRegion(axis, 0, participants), nil

	case model.Projective:
		s.settings.metrics.query(string(axis))
		projections := s.projectionsFedBy(revisionID)
		participants := make([]model.Revision, 0, len(projections))
		for _, p := range projections {
			participants = append(participants, p.AsRevision())
		}
		return model.NewRegion(axis, 0, participants), nil

	default:
		return model.Region{}, status.ErrInvalidArgument.Wrapf("region axis %s is not supported by a global region query", axis)
	}
}

func copyProjections(projections []model.Projection) []model.Projection {
	res := make([]model.Projection, 0, len(projections))
	for _, p := range projections {
		p.Sources = append([]string{}, p.Sources...)
		res = append(res, p)
	}
	return res
}
