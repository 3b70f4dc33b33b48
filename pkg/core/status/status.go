// Package status exports errors produced by the core package.
//
// NOTE: such constants are located in a separate package so that pkg/model
// may report parse errors without depending on pkg/core.
package status

import (
	"github.com/oneconcern/revmon/pkg/errors"
)

var (
	// ErrNotFound indicates an unknown graph, revision, edge, relation or projection
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates an empty or malformed identifier, an unsupported region axis or an out-of-range depth
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvariantViolation indicates that a revision graph or the system as a whole is inconsistent
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrParse indicates a malformed wire-format document
	ErrParse = errors.New("parse error")
)

// Revision graph invariants
var (
	ErrDuplicateRevision  = ErrInvariantViolation.Extend("duplicate revision id")
	ErrRootCount          = ErrInvariantViolation.Extend("graph must have exactly one root")
	ErrTooManySuccessors  = ErrInvariantViolation.Extend("revision has more than two incoming successor edges")
	ErrTooManyMerges      = ErrInvariantViolation.Extend("revision has more than one incoming merge edge")
	ErrUnrecordedMerge    = ErrInvariantViolation.Extend("two incoming successor edges require exactly one incoming merge edge")
	ErrCycle              = ErrInvariantViolation.Extend("graph has cycles")
	ErrGraphIDMismatch    = ErrInvariantViolation.Extend("revision graph id does not match its graph")
	ErrMissingPredecessor = ErrInvariantViolation.Extend("no predecessor found before reaching the root")
)

// System invariants
var (
	ErrDuplicateGraph      = ErrInvariantViolation.Extend("duplicate graph id")
	ErrInvalidGraph        = ErrInvariantViolation.Extend("invalid graph")
	ErrDanglingRelation    = ErrInvariantViolation.Extend("relation endpoint does not exist")
	ErrDanglingProjection  = ErrInvariantViolation.Extend("projection source does not exist")
	ErrDuplicateProjection = ErrInvariantViolation.Extend("duplicate projection id")
)
