package model

import (
	"fmt"
	"strings"

	"github.com/oneconcern/revmon/pkg/core/status"
)

const (
	// FieldSeparator separates fields on a serialized line
	FieldSeparator = ";"

	// ListSeparator separates projection sources
	ListSeparator = ","

	revisionPrefix   = "V"
	edgePrefix       = "E"
	graphPrefix      = "G"
	relationPrefix   = "L"
	projectionPrefix = "P"

	graphsSection      = "GRAPHS"
	relationsSection   = "RELATIONS"
	projectionsSection = "PROJECTIONS"

	revisionFields   = 6
	edgeFields       = 4
	graphFields      = 2
	relationFields   = 6
	projectionFields = 4
)

func joinFields(prefix string, fields ...string) string {
	return prefix + FieldSeparator + strings.Join(fields, FieldSeparator)
}

// splitFields splits a serialized line, checking its prefix and arity
func splitFields(line, prefix string, arity int) ([]string, error) {
	parts := strings.Split(line, FieldSeparator)
	if parts[0] != prefix {
		return nil, status.ErrParse.Wrapf("expected a line starting with %q, got %q", prefix+FieldSeparator, line)
	}
	if len(parts) != arity {
		return nil, status.ErrParse.Wrapf("expected %d fields, got %d in %q", arity, len(parts), line)
	}
	return parts, nil
}

// checkField verifies that a field may be written on a single serialized line and read back unchanged.
// Parsing trims lines and projection sources, so surrounding white space is rejected.
func checkField(name, value string, required bool) error {
	if required && value == "" {
		return status.ErrInvalidArgument.Wrapf("empty field: %s is empty", name)
	}
	if strings.ContainsAny(value, FieldSeparator+"\n\r") {
		return status.ErrInvalidArgument.Wrapf("invalid %s: %q contains a separator or line break", name, value)
	}
	if strings.TrimSpace(value) != value {
		return status.ErrInvalidArgument.Wrapf("invalid %s: %q has leading or trailing white space", name, value)
	}
	return nil
}

func lineKind(line string) string {
	if i := strings.Index(line, FieldSeparator); i >= 0 {
		return line[:i]
	}
	return line
}

func parseError(err error, lineNo int) error {
	return fmt.Errorf("line %d: %w", lineNo, err)
}
