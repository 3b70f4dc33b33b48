package model

import (
	"strings"

	"github.com/oneconcern/revmon/pkg/core/status"
)

// EdgeLabel qualifies the relationship between two revisions
type EdgeLabel string

const (
	// Successor is the label for direct temporal precedence
	Successor EdgeLabel = "SUCCESSOR"

	// Merge is the label linking the least common ancestor of a join to the joined revision
	Merge EdgeLabel = "MERGE"

	inversePrefix = "INVERSE_"
)

// ParseEdgeLabel decodes a serialized edge label
func ParseEdgeLabel(s string) (EdgeLabel, error) {
	switch l := EdgeLabel(s); l {
	case Successor, Merge:
		return l, nil
	default:
		return "", status.ErrParse.Wrapf("unknown edge label %q", s)
	}
}

func (l EdgeLabel) String() string {
	return string(l)
}

// Inverse yields the label of the twin edge used for backward traversal.
// The inverse of an inverse label is the original label.
func (l EdgeLabel) Inverse() EdgeLabel {
	if l.IsInverse() {
		return EdgeLabel(strings.TrimPrefix(string(l), inversePrefix))
	}
	return EdgeLabel(inversePrefix + string(l))
}

// IsInverse tells if this label tags an inverse twin edge
func (l EdgeLabel) IsInverse() bool {
	return strings.HasPrefix(string(l), inversePrefix)
}

// Edge is a labeled directed edge between two revisions of the same graph
type Edge struct {
	Source string    `json:"source" yaml:"source"`
	Target string    `json:"target" yaml:"target"`
	Label  EdgeLabel `json:"label" yaml:"label"`
}

// NewSuccessor builds a SUCCESSOR edge
func NewSuccessor(source, target string) Edge {
	return Edge{Source: source, Target: target, Label: Successor}
}

// NewMerge builds a MERGE edge
func NewMerge(source, target string) Edge {
	return Edge{Source: source, Target: target, Label: Merge}
}

// ValidateEdge checks that an edge may be stored and serialized
func ValidateEdge(e Edge) error {
	if err := checkField("edge source", e.Source, true); err != nil {
		return err
	}
	if err := checkField("edge target", e.Target, true); err != nil {
		return err
	}
	if e.Label != Successor && e.Label != Merge {
		return status.ErrInvalidArgument.Wrapf("invalid edge label %q", e.Label)
	}
	return nil
}

// Serialize an edge as E;<sourceId>;<targetId>;<LABEL>
func (e Edge) Serialize() string {
	return joinFields(edgePrefix, e.Source, e.Target, string(e.Label))
}

// ParseEdge decodes an edge line
func ParseEdge(line string) (Edge, error) {
	parts, err := splitFields(line, edgePrefix, edgeFields)
	if err != nil {
		return Edge{}, err
	}
	label, err := ParseEdgeLabel(parts[3])
	if err != nil {
		return Edge{}, err
	}
	e := Edge{Source: parts[1], Target: parts[2], Label: label}
	if err := ValidateEdge(e); err != nil {
		return Edge{}, status.ErrParse.Wrap(err)
	}
	return e, nil
}
