package core

import (
	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/model"
	"go.uber.org/zap"
)

type snapshot struct {
	graphs      []RevisionGraph
	relations   []model.Relation
	projections []model.Projection
}

func (s *System) snapshot() snapshot {
	graphs := make([]RevisionGraph, 0, len(s.graphs))
	for _, g := range s.graphs {
		graphs = append(graphs, g.Clone())
	}
	return snapshot{
		graphs:      graphs,
		relations:   append([]model.Relation{}, s.relations...),
		projections: copyProjections(s.projections),
	}
}

func (s *System) restore(snap snapshot) {
	s.graphs = snap.graphs
	s.relations = snap.relations
	s.projections = snap.projections
}

// mutate applies a change under the write lock.
//
// Unless validation is skipped, the system is validated after the change and restored
// to its prior state on any failure.
func (s *System) mutate(operation string, opts []MutationOption, apply func() error, fields ...zap.Field) error {
	var settings mutationSettings
	for _, opt := range opts {
		opt(&settings)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.l.With(append(fields, zap.String("operation", operation))...)
	if settings.skipValidation {
		if err := apply(); err != nil {
			s.settings.metrics.mutation(operation, outcomeFailed)
			return err
		}
		l.Debug("applied without validation")
		s.settings.metrics.mutation(operation, outcomeUnchecked)
		return nil
	}

	snap := s.snapshot()
	if err := apply(); err != nil {
		s.restore(snap)
		s.settings.metrics.mutation(operation, outcomeFailed)
		l.Debug("mutation failed", zap.Error(err))
		return err
	}
	if err := s.validate(); err != nil {
		s.restore(snap)
		s.settings.metrics.mutation(operation, outcomeRolledBack)
		l.Warn("mutation rolled back", zap.Error(err))
		return err
	}
	s.settings.metrics.mutation(operation, outcomeOK)
	l.Debug("mutation applied")
	return nil
}

// InitNewGraph adds an empty graph
func (s *System) InitNewGraph(graphID string) error {
	if err := model.ValidateGraphID(graphID); err != nil {
		return err
	}
	err := s.mutate("init_graph", nil, func() error {
		if _, err := s.graph(graphID); err == nil {
			return status.ErrDuplicateGraph.Wrapf("graph %q", graphID)
		}
		s.graphs = append(s.graphs, s.settings.graphFactory(graphID))
		return nil
	}, zap.String("graph", graphID))
	if err == nil {
		s.l.Info("graph created", zap.String("graph", graphID))
	}
	return err
}

// RemoveGraph removes a graph, with all the relations and projections referring to its revisions
func (s *System) RemoveGraph(graphID string) error {
	err := s.mutate("remove_graph", nil, func() error {
		g, err := s.graph(graphID)
		if err != nil {
			return err
		}
		owned := make(map[string]struct{})
		for _, r := range g.Revisions() {
			owned[r.ID] = struct{}{}
		}
		s.pruneRelations(func(r model.Relation) bool {
			_, from := owned[r.FromRevision]
			_, to := owned[r.ToRevision]
			return from || to
		})
		s.pruneProjections(func(p model.Projection) bool {
			for _, src := range p.Sources {
				if _, ok := owned[src]; ok {
					return true
				}
			}
			return false
		})
		kept := s.graphs[:0]
		for _, o := range s.graphs {
			if o.GraphID() != graphID {
				kept = append(kept, o)
			}
		}
		s.graphs = kept
		return nil
	}, zap.String("graph", graphID))
	if err == nil {
		s.l.Info("graph removed", zap.String("graph", graphID))
	}
	return err
}

// AddRelation adds a relation. Adding a relation which already exists does nothing.
func (s *System) AddRelation(r model.Relation) error {
	if err := model.ValidateRelation(r); err != nil {
		return err
	}
	return s.mutate("add_relation", nil, func() error {
		if s.relationIndex(r) < 0 {
			s.relations = append(s.relations, r)
		}
		return nil
	}, zap.String("from", r.FromRevision), zap.String("to", r.ToRevision))
}

// RemoveRelation removes a relation
func (s *System) RemoveRelation(r model.Relation) error {
	return s.mutate("remove_relation", nil, func() error {
		i := s.relationIndex(r)
		if i < 0 {
			return status.ErrNotFound.Wrapf("relation %s", r.Serialize())
		}
		s.relations = append(s.relations[:i], s.relations[i+1:]...)
		return nil
	}, zap.String("from", r.FromRevision), zap.String("to", r.ToRevision))
}

func (s *System) relationIndex(r model.Relation) int {
	for i, o := range s.relations {
		if o == r {
			return i
		}
	}
	return -1
}

// AddProjection adds a projection. Adding a projection which already exists does nothing.
//
// A different projection with the same id is rejected.
func (s *System) AddProjection(p model.Projection) error {
	if err := model.ValidateProjection(p); err != nil {
		return err
	}
	p.Sources = append([]string{}, p.Sources...)
	return s.mutate("add_projection", nil, func() error {
		if i := s.projectionIndex(p.ID); i >= 0 {
			if s.projections[i].Equal(p) {
				return nil
			}
			return status.ErrDuplicateProjection.Wrapf("projection %q", p.ID)
		}
		s.projections = append(s.projections, p)
		return nil
	}, zap.String("projection", p.ID))
}

// RemoveProjection removes a projection, given its id
func (s *System) RemoveProjection(projectionID string) error {
	return s.mutate("remove_projection", nil, func() error {
		i := s.projectionIndex(projectionID)
		if i < 0 {
			return status.ErrNotFound.Wrapf("projection %q", projectionID)
		}
		s.projections = append(s.projections[:i], s.projections[i+1:]...)
		return nil
	}, zap.String("projection", projectionID))
}

func (s *System) projectionIndex(projectionID string) int {
	for i, p := range s.projections {
		if p.ID == projectionID {
			return i
		}
	}
	return -1
}

// AddRevision adds a revision to a graph
func (s *System) AddRevision(graphID string, r model.Revision, opts ...MutationOption) error {
	return s.mutate("add_revision", opts, func() error {
		g, err := s.graph(graphID)
		if err != nil {
			return err
		}
		return g.AddRevision(r)
	}, zap.String("graph", graphID), zap.String("revision", r.ID))
}

// AddRevisionWithUnification adds a revision joining two branches of a graph.
//
// See RevisionGraph.AddRevisionWithUnification.
func (s *System) AddRevisionWithUnification(graphID string, r model.Revision, edgeA, edgeB model.Edge) error {
	return s.mutate("add_revision_with_unification", nil, func() error {
		g, err := s.graph(graphID)
		if err != nil {
			return err
		}
		return g.AddRevisionWithUnification(r, edgeA, edgeB)
	}, zap.String("graph", graphID), zap.String("revision", r.ID))
}

// RemoveRevision removes a revision from the graph owning it.
//
// The relations touching the revision and the projections it feeds are removed too.
func (s *System) RemoveRevision(revisionID string, opts ...MutationOption) error {
	return s.mutate("remove_revision", opts, func() error {
		g, err := s.owner(revisionID)
		if err != nil {
			return err
		}
		s.pruneProjections(func(p model.Projection) bool { return p.HasSource(revisionID) })
		s.pruneRelations(func(r model.Relation) bool { return r.Touches(revisionID) })
		return g.RemoveRevision(revisionID)
	}, zap.String("revision", revisionID))
}

// AddEdge adds an edge to a graph
func (s *System) AddEdge(graphID string, e model.Edge, opts ...MutationOption) error {
	return s.mutate("add_edge", opts, func() error {
		g, err := s.graph(graphID)
		if err != nil {
			return err
		}
		return g.AddEdge(e)
	}, zap.String("graph", graphID), zap.String("edge", e.Serialize()))
}

// RemoveEdge removes an edge from a graph
func (s *System) RemoveEdge(graphID string, e model.Edge, opts ...MutationOption) error {
	return s.mutate("remove_edge", opts, func() error {
		g, err := s.graph(graphID)
		if err != nil {
			return err
		}
		return g.RemoveEdge(e)
	}, zap.String("graph", graphID), zap.String("edge", e.Serialize()))
}

func (s *System) pruneRelations(match func(model.Relation) bool) {
	kept := make([]model.Relation, 0, len(s.relations))
	for _, r := range s.relations {
		if match(r) {
			s.l.Debug("relation pruned", zap.String("from", r.FromRevision), zap.String("to", r.ToRevision))
			continue
		}
		kept = append(kept, r)
	}
	s.relations = kept
}

func (s *System) pruneProjections(match func(model.Projection) bool) {
	kept := make([]model.Projection, 0, len(s.projections))
	for _, p := range s.projections {
		if match(p) {
			s.l.Debug("projection pruned", zap.String("projection", p.ID))
			continue
		}
		kept = append(kept, p)
	}
	s.projections = kept
}
