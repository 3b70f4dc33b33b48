package model

import (
	"sort"
	"strings"

	"github.com/oneconcern/revmon/pkg/core/status"
)

// GraphDescriptor describes the content of one revision graph
type GraphDescriptor struct {
	ID        string     `json:"id" yaml:"id"`
	Revisions []Revision `json:"revisions,omitempty" yaml:"revisions,omitempty"`
	Edges     []Edge     `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// GraphDescriptors is a sortable collection of graph descriptors, ordered by id
type GraphDescriptors []GraphDescriptor

func (g GraphDescriptors) Len() int           { return len(g) }
func (g GraphDescriptors) Less(i, j int) bool { return g[i].ID < g[j].ID }
func (g GraphDescriptors) Swap(i, j int)      { g[i], g[j] = g[j], g[i] }

// ValidateGraphID checks a graph identifier
func ValidateGraphID(id string) error {
	return checkField("graph id", id, true)
}

// ValidateGraph checks that all the revisions and edges of a graph descriptor are well-formed
// and that every revision belongs to the described graph.
func ValidateGraph(g GraphDescriptor) error {
	if err := ValidateGraphID(g.ID); err != nil {
		return err
	}
	for _, r := range g.Revisions {
		if err := ValidateRevision(r); err != nil {
			return err
		}
		if r.GraphID != g.ID {
			return status.ErrGraphIDMismatch.Wrapf("revision %q declares graph %q in graph %q", r.ID, r.GraphID, g.ID)
		}
	}
	for _, e := range g.Edges {
		if err := ValidateEdge(e); err != nil {
			return err
		}
	}
	return nil
}

// Lines yields the canonical serialized lines of a graph block: the header,
// then the sorted revision lines, then the sorted edge lines.
func (g GraphDescriptor) Lines() []string {
	revisions := make([]string, 0, len(g.Revisions))
	for _, r := range g.Revisions {
		revisions = append(revisions, r.Serialize())
	}
	sort.Strings(revisions)

	edges := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, e.Serialize())
	}
	sort.Strings(edges)

	lines := make([]string, 0, 1+len(revisions)+len(edges))
	lines = append(lines, joinFields(graphPrefix, g.ID))
	lines = append(lines, revisions...)
	return append(lines, edges...)
}

// Serialize a graph block
func (g GraphDescriptor) Serialize() string {
	return strings.Join(g.Lines(), "\n")
}

// ParseGraph decodes a graph block. Blank lines are ignored.
func ParseGraph(block string) (GraphDescriptor, error) {
	return parseGraphLines(strings.Split(block, "\n"), 1)
}

func parseGraphLines(lines []string, firstLineNo int) (GraphDescriptor, error) {
	var (
		g      GraphDescriptor
		header bool
	)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := firstLineNo + i

		if !header {
			parts, err := splitFields(line, graphPrefix, graphFields)
			if err != nil {
				return GraphDescriptor{}, parseError(err, lineNo)
			}
			if err := ValidateGraphID(parts[1]); err != nil {
				return GraphDescriptor{}, parseError(status.ErrParse.Wrap(err), lineNo)
			}
			g.ID = parts[1]
			header = true
			continue
		}

		switch lineKind(line) {
		case revisionPrefix:
			r, err := ParseRevision(line)
			if err != nil {
				return GraphDescriptor{}, parseError(err, lineNo)
			}
			if r.GraphID != g.ID {
				return GraphDescriptor{}, parseError(
					status.ErrParse.Wrapf("revision %q declares graph %q in block of graph %q", r.ID, r.GraphID, g.ID), lineNo)
			}
			g.Revisions = append(g.Revisions, r)
		case edgePrefix:
			e, err := ParseEdge(line)
			if err != nil {
				return GraphDescriptor{}, parseError(err, lineNo)
			}
			g.Edges = append(g.Edges, e)
		default:
			return GraphDescriptor{}, parseError(status.ErrParse.Wrapf("unexpected line in graph block: %q", line), lineNo)
		}
	}
	if !header {
		return GraphDescriptor{}, status.ErrParse.Wrapf("missing graph header")
	}
	return g, nil
}
