package model

import (
	"math"
	"sort"

	"github.com/oneconcern/revmon/pkg/core/status"
)

// Axis along which a region is computed
type Axis string

const (
	// Time follows the path to the root of a graph
	Time Axis = "TIME"

	// Space collects the branches sharing a common ancestor
	Space Axis = "SPACE"

	// Relational follows outgoing relations, one hop
	Relational Axis = "RELATIONAL"

	// Projective collects the projections fed by a revision
	Projective Axis = "PROJECTIVE"
)

const (
	// Unbounded is the depth requesting a traversal up to the root
	Unbounded = -1

	// UnboundedCardinality is the cardinality reported for an unbounded region
	UnboundedCardinality = math.MaxInt
)

// ParseAxis decodes a region axis, case-sensitive
func ParseAxis(s string) (Axis, error) {
	switch a := Axis(s); a {
	case Time, Space, Relational, Projective:
		return a, nil
	default:
		return "", status.ErrInvalidArgument.Wrapf("unknown region axis %q", s)
	}
}

// IsLocal tells if the axis is computed within a single graph
func (a Axis) IsLocal() bool {
	return a == Time || a == Space
}

// ValidateDepth checks a traversal depth: non-negative, or Unbounded
func ValidateDepth(depth int) error {
	if depth < 0 && depth != Unbounded {
		return status.ErrInvalidArgument.Wrapf("depth must be greater or equal to 0 or Unbounded (%d), got %d", Unbounded, depth)
	}
	return nil
}

// Cardinality reported for a region computed with some depth
func Cardinality(depth int) int {
	if depth == Unbounded {
		return UnboundedCardinality
	}
	return depth
}

// Region describes the revisions surrounding a given one along an axis.
//
// Participants form a set: they are deduplicated by (graph, id) and sorted by id.
type Region struct {
	Axis         Axis       `json:"axis" yaml:"axis"`
	Cardinality  int        `json:"cardinality" yaml:"cardinality"`
	Participants []Revision `json:"participants" yaml:"participants"`
}

// NewRegion builds a region, normalizing its participants to a sorted set
func NewRegion(axis Axis, cardinality int, participants []Revision) Region {
	type key struct{ graph, id string }
	seen := make(map[key]struct{}, len(participants))
	set := make(Revisions, 0, len(participants))
	for _, p := range participants {
		k := key{p.GraphID, p.ID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		set = append(set, p)
	}
	sort.Stable(set)
	return Region{Axis: axis, Cardinality: cardinality, Participants: set}
}

// IDs of the participants
func (r Region) IDs() []string {
	return Revisions(r.Participants).IDs()
}

// Has tells if a revision participates in the region
func (r Region) Has(revisionID string) bool {
	for _, p := range r.Participants {
		if p.ID == revisionID {
			return true
		}
	}
	return false
}
