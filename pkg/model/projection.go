package model

import (
	"strings"

	"github.com/oneconcern/revmon/pkg/core/status"
)

const (
	// ProjectionMarker fills the graph id and description of the synthetic
	// revision standing for a projection in a projective region
	ProjectionMarker = "PROJECTION"
)

// Projection is a named artifact computed from several source revisions
type Projection struct {
	ID      string   `json:"id" yaml:"id"`
	Sources []string `json:"sources" yaml:"sources"`
	Target  string   `json:"target" yaml:"target"`
}

// HasSource tells if a revision is one of the sources of the projection
func (p Projection) HasSource(revisionID string) bool {
	for _, s := range p.Sources {
		if s == revisionID {
			return true
		}
	}
	return false
}

// Equal compares two projections, sources in order
func (p Projection) Equal(o Projection) bool {
	if p.ID != o.ID || p.Target != o.Target || len(p.Sources) != len(o.Sources) {
		return false
	}
	for i := range p.Sources {
		if p.Sources[i] != o.Sources[i] {
			return false
		}
	}
	return true
}

// AsRevision yields the synthetic revision standing for this projection in a projective region
func (p Projection) AsRevision() Revision {
	return Revision{
		GraphID:     ProjectionMarker,
		ID:          p.ID,
		Description: ProjectionMarker,
		Location:    p.Target,
	}
}

// ValidateProjection checks that a projection may be stored and serialized
func ValidateProjection(p Projection) error {
	if err := checkField("projection id", p.ID, true); err != nil {
		return err
	}
	if err := checkField("projection target", p.Target, true); err != nil {
		return err
	}
	if len(p.Sources) == 0 {
		return status.ErrInvalidArgument.Wrapf("projection %q has no source", p.ID)
	}
	for _, s := range p.Sources {
		if err := checkField("projection source", s, true); err != nil {
			return err
		}
		if strings.Contains(s, ListSeparator) {
			return status.ErrInvalidArgument.Wrapf("invalid projection source: %q contains %q", s, ListSeparator)
		}
	}
	return nil
}

// Serialize a projection as P;<projectionId>;<src1>,<src2>,...;<target>
func (p Projection) Serialize() string {
	return joinFields(projectionPrefix, p.ID, strings.Join(p.Sources, ListSeparator), p.Target)
}

// ParseProjection decodes a projection line
func ParseProjection(line string) (Projection, error) {
	parts, err := splitFields(line, projectionPrefix, projectionFields)
	if err != nil {
		return Projection{}, err
	}
	sources := strings.Split(parts[2], ListSeparator)
	for i := range sources {
		sources[i] = strings.TrimSpace(sources[i])
	}
	p := Projection{
		ID:      parts[1],
		Sources: sources,
		Target:  parts[3],
	}
	if err := ValidateProjection(p); err != nil {
		return Projection{}, status.ErrParse.Wrap(err)
	}
	return p, nil
}
