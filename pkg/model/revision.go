package model

import "github.com/oneconcern/revmon/pkg/core/status"

// Revision is a vertex of a revision graph.
type Revision struct {
	GraphID     string `json:"graph" yaml:"graph"`
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Payload     string `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Revisions is a sortable collection of revisions, ordered by id
type Revisions []Revision

func (r Revisions) Len() int           { return len(r) }
func (r Revisions) Less(i, j int) bool { return r[i].ID < r[j].ID }
func (r Revisions) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }

// IDs of the revisions, in order
func (r Revisions) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, rev := range r {
		ids = append(ids, rev.ID)
	}
	return ids
}

// ValidateRevision checks that a revision may be stored and serialized
func ValidateRevision(r Revision) error {
	if err := checkField("revision graph id", r.GraphID, true); err != nil {
		return err
	}
	if err := checkField("revision id", r.ID, true); err != nil {
		return err
	}
	if err := checkField("revision description", r.Description, false); err != nil {
		return err
	}
	if err := checkField("revision location", r.Location, false); err != nil {
		return err
	}
	return checkField("revision payload", r.Payload, false)
}

// Serialize a revision as V;<graphId>;<revisionId>;<description>;<location>;<payload>
func (r Revision) Serialize() string {
	return joinFields(revisionPrefix, r.GraphID, r.ID, r.Description, r.Location, r.Payload)
}

// ParseRevision decodes a revision line
func ParseRevision(line string) (Revision, error) {
	parts, err := splitFields(line, revisionPrefix, revisionFields)
	if err != nil {
		return Revision{}, err
	}
	r := Revision{
		GraphID:     parts[1],
		ID:          parts[2],
		Description: parts[3],
		Location:    parts[4],
		Payload:     parts[5],
	}
	if err := ValidateRevision(r); err != nil {
		return Revision{}, status.ErrParse.Wrap(err)
	}
	return r, nil
}
