package core

import (
	"github.com/oneconcern/revmon/pkg/core/status"
	"go.uber.org/multierr"
)

// Validate checks the consistency of the whole system:
//   - graph ids are unique
//   - revision ids are unique across all graphs
//   - every graph is valid, with cycles searched up to the configured lookahead
//   - both endpoints of every relation exist
//   - projection ids are unique and all projection sources exist
func (s *System) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.validate()
}

func (s *System) validate() error {
	err := s.checks()
	s.settings.metrics.validation(err)
	return err
}

func (s *System) checks() error {
	graphIDs := make(map[string]struct{}, len(s.graphs))
	for _, g := range s.graphs {
		if _, ok := graphIDs[g.GraphID()]; ok {
			return status.ErrDuplicateGraph.Wrapf("graph %q", g.GraphID())
		}
		graphIDs[g.GraphID()] = struct{}{}
	}

	var err error
	owners := make(map[string]string)
	for _, g := range s.graphs {
		for _, r := range g.Revisions() {
			if other, ok := owners[r.ID]; ok {
				err = multierr.Append(err, status.ErrDuplicateRevision.Wrapf("revision %q exists in graphs %q and %q", r.ID, other, g.GraphID()))
				continue
			}
			owners[r.ID] = g.GraphID()
		}
	}
	if err != nil {
		return err
	}

	for _, g := range s.graphs {
		if e := g.Validate(s.settings.lookahead); e != nil {
			return status.ErrInvalidGraph.Wrap(e)
		}
	}

	for _, r := range s.relations {
		for _, id := range []string{r.FromRevision, r.ToRevision} {
			if _, ok := owners[id]; !ok {
				err = multierr.Append(err, status.ErrDanglingRelation.Wrapf("relation %s refers to unknown revision %q", r.Serialize(), id))
			}
		}
	}
	if err != nil {
		return err
	}

	projectionIDs := make(map[string]struct{}, len(s.projections))
	for _, p := range s.projections {
		if _, ok := projectionIDs[p.ID]; ok {
			return status.ErrDuplicateProjection.Wrapf("projection %q", p.ID)
		}
		projectionIDs[p.ID] = struct{}{}
		for _, src := range p.Sources {
			if _, ok := owners[src]; !ok {
				err = multierr.Append(err, status.ErrDanglingProjection.Wrapf("projection %q refers to unknown revision %q", p.ID, src))
			}
		}
	}
	return err
}
