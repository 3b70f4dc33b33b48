package core

import (
	"github.com/oneconcern/revmon/pkg/model"
)

// Build a system from its descriptor, then validate it
func Build(descriptor model.SystemDescriptor, opts ...Option) (*System, error) {
	s := New(opts...)
	for _, gd := range descriptor.Graphs {
		g, err := buildGraph(gd, s.settings.graphFactory)
		if err != nil {
			return nil, err
		}
		s.graphs = append(s.graphs, g)
	}
	for _, r := range descriptor.Relations {
		if err := model.ValidateRelation(r); err != nil {
			return nil, err
		}
	}
	for _, p := range descriptor.Projections {
		if err := model.ValidateProjection(p); err != nil {
			return nil, err
		}
	}
	s.relations = append([]model.Relation{}, descriptor.Relations...)
	s.projections = copyProjections(descriptor.Projections)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse a serialized system, then validate it
func Parse(doc string, opts ...Option) (*System, error) {
	descriptor, err := model.ParseSystem(doc)
	if err != nil {
		return nil, err
	}
	return Build(descriptor, opts...)
}

// Describe the system as a descriptor.
//
// Graphs keep the order in which they were added.
func (s *System) Describe() model.SystemDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	graphs := make(model.GraphDescriptors, 0, len(s.graphs))
	for _, g := range s.graphs {
		graphs = append(graphs, g.Describe())
	}
	return model.SystemDescriptor{
		Graphs:      graphs,
		Relations:   append([]model.Relation{}, s.relations...),
		Projections: copyProjections(s.projections),
	}
}

// Serialize the system into its canonical text form
func (s *System) Serialize() string {
	return s.Describe().Serialize()
}
