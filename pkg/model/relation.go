package model

import "github.com/oneconcern/revmon/pkg/core/status"

// Relation is a directed pointer between two revisions, possibly in different graphs
type Relation struct {
	FromGraph    string `json:"fromGraph" yaml:"fromGraph"`
	ToGraph      string `json:"toGraph" yaml:"toGraph"`
	FromRevision string `json:"fromRevision" yaml:"fromRevision"`
	ToRevision   string `json:"toRevision" yaml:"toRevision"`
	Payload      string `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Touches tells if the relation points from or to a revision
func (r Relation) Touches(revisionID string) bool {
	return r.FromRevision == revisionID || r.ToRevision == revisionID
}

// ValidateRelation checks that a relation may be stored and serialized
func ValidateRelation(r Relation) error {
	for _, f := range []struct {
		name, value string
		required    bool
	}{
		{"relation source graph", r.FromGraph, true},
		{"relation target graph", r.ToGraph, true},
		{"relation source revision", r.FromRevision, true},
		{"relation target revision", r.ToRevision, true},
		{"relation payload", r.Payload, false},
	} {
		if err := checkField(f.name, f.value, f.required); err != nil {
			return err
		}
	}
	return nil
}

// Serialize a relation as L;<fromGraph>;<toGraph>;<fromRevisionId>;<toRevisionId>;<payload>
func (r Relation) Serialize() string {
	return joinFields(relationPrefix, r.FromGraph, r.ToGraph, r.FromRevision, r.ToRevision, r.Payload)
}

// ParseRelation decodes a relation line
func ParseRelation(line string) (Relation, error) {
	parts, err := splitFields(line, relationPrefix, relationFields)
	if err != nil {
		return Relation{}, err
	}
	r := Relation{
		FromGraph:    parts[1],
		ToGraph:      parts[2],
		FromRevision: parts[3],
		ToRevision:   parts[4],
		Payload:      parts[5],
	}
	if err := ValidateRelation(r); err != nil {
		return Relation{}, status.ErrParse.Wrap(err)
	}
	return r, nil
}
