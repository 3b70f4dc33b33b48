package model

import (
	"sort"
	"strings"

	"github.com/oneconcern/revmon/pkg/core/status"
)

// SystemDescriptor describes a whole multi-revision system: its graphs, relations and projections
type SystemDescriptor struct {
	Graphs      []GraphDescriptor `json:"graphs,omitempty" yaml:"graphs,omitempty"`
	Relations   []Relation        `json:"relations,omitempty" yaml:"relations,omitempty"`
	Projections []Projection      `json:"projections,omitempty" yaml:"projections,omitempty"`
}

// Lines yields the canonical serialized lines of a system document.
//
// Graph blocks are sorted by graph id, relation and projection lines are sorted,
// so that two equal systems always serialize to the same text.
func (s SystemDescriptor) Lines() []string {
	graphs := make(GraphDescriptors, len(s.Graphs))
	copy(graphs, s.Graphs)
	sort.Sort(graphs)

	lines := []string{graphsSection}
	for _, g := range graphs {
		lines = append(lines, g.Lines()...)
	}

	lines = append(lines, relationsSection)
	relations := make([]string, 0, len(s.Relations))
	for _, r := range s.Relations {
		relations = append(relations, r.Serialize())
	}
	sort.Strings(relations)
	lines = append(lines, relations...)

	lines = append(lines, projectionsSection)
	projections := make([]string, 0, len(s.Projections))
	for _, p := range s.Projections {
		projections = append(projections, p.Serialize())
	}
	sort.Strings(projections)
	return append(lines, projections...)
}

// Serialize a system document
func (s SystemDescriptor) Serialize() string {
	return strings.Join(s.Lines(), "\n")
}

// ParseSystem decodes a system document.
//
// Blank lines and surrounding white space are ignored. Parsing does not check
// cross references between graphs, relations and projections: this is done when
// a system is built from the descriptor.
func ParseSystem(doc string) (SystemDescriptor, error) {
	const (
		inPreamble = iota
		inGraphs
		inRelations
		inProjections
	)

	var (
		s       SystemDescriptor
		section = inPreamble
		block   []string
		blockAt int
	)

	flushGraph := func() error {
		if len(block) == 0 {
			return nil
		}
		g, err := parseGraphLines(block, blockAt)
		if err != nil {
			return err
		}
		s.Graphs = append(s.Graphs, g)
		block = nil
		return nil
	}

	for i, raw := range strings.Split(doc, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1

		switch {
		case line == graphsSection:
			if section != inPreamble {
				return SystemDescriptor{}, parseError(status.ErrParse.Wrapf("unexpected %s section", graphsSection), lineNo)
			}
			section = inGraphs
			continue
		case line == relationsSection:
			if section != inGraphs {
				return SystemDescriptor{}, parseError(status.ErrParse.Wrapf("unexpected %s section", relationsSection), lineNo)
			}
			if err := flushGraph(); err != nil {
				return SystemDescriptor{}, err
			}
			section = inRelations
			continue
		case line == projectionsSection:
			if section != inRelations {
				return SystemDescriptor{}, parseError(status.ErrParse.Wrapf("unexpected %s section", projectionsSection), lineNo)
			}
			section = inProjections
			continue
		}

		switch section {
		case inPreamble:
			return SystemDescriptor{}, parseError(status.ErrParse.Wrapf("document must start with %s", graphsSection), lineNo)

		case inGraphs:
			switch lineKind(line) {
			case graphPrefix:
				if err := flushGraph(); err != nil {
					return SystemDescriptor{}, err
				}
				blockAt = lineNo
				block = []string{line}
			case revisionPrefix, edgePrefix:
				if block == nil {
					return SystemDescriptor{}, parseError(status.ErrParse.Wrapf("line outside of a graph block: %q", line), lineNo)
				}
				// keep line numbering aligned with the block start
				for len(block) < lineNo-blockAt {
					block = append(block, "")
				}
				block = append(block, line)
			default:
				return SystemDescriptor{}, parseError(status.ErrParse.Wrapf("unexpected line in %s section: %q", graphsSection, line), lineNo)
			}

		case inRelations:
			r, err := ParseRelation(line)
			if err != nil {
				return SystemDescriptor{}, parseError(err, lineNo)
			}
			s.Relations = append(s.Relations, r)

		case inProjections:
			p, err := ParseProjection(line)
			if err != nil {
				return SystemDescriptor{}, parseError(err, lineNo)
			}
			s.Projections = append(s.Projections, p)
		}
	}

	if section != inProjections {
		return SystemDescriptor{}, status.ErrParse.Wrapf("incomplete document: expected %s, %s and %s sections",
			graphsSection, relationsSection, projectionsSection)
	}
	return s, nil
}
