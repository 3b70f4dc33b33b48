package model

import (
	"testing"

	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEdge(t *testing.T) {
	e, err := ParseEdge("E;1a;1b;SUCCESSOR")
	require.NoError(t, err)
	assert.Equal(t, NewSuccessor("1a", "1b"), e)

	e, err = ParseEdge("E;a;j;MERGE")
	require.NoError(t, err)
	assert.Equal(t, NewMerge("a", "j"), e)
	assert.Equal(t, "E;a;j;MERGE", e.Serialize())

	for _, line := range []string{
		"E;a;b",
		"E;a;b;SUCCESSOR;x",
		"E;a;b;INVERSE_SUCCESSOR",
		"E;a;b;successor",
		"V;a;b;SUCCESSOR",
		"E;;b;SUCCESSOR",
	} {
		_, err := ParseEdge(line)
		require.Errorf(t, err, "expected %q to be rejected", line)
		assert.True(t, errors.Is(err, status.ErrParse))
	}
}

func TestEdgeLabelInverse(t *testing.T) {
	assert.Equal(t, EdgeLabel("INVERSE_SUCCESSOR"), Successor.Inverse())
	assert.Equal(t, EdgeLabel("INVERSE_MERGE"), Merge.Inverse())
	assert.Equal(t, Merge, Merge.Inverse().Inverse())
	assert.True(t, Successor.Inverse().IsInverse())
	assert.False(t, Successor.IsInverse())
}

func TestValidateEdge(t *testing.T) {
	require.NoError(t, ValidateEdge(NewSuccessor("a", "b")))
	require.Error(t, ValidateEdge(Edge{Source: "a", Target: "b", Label: "OTHER"}))
	require.Error(t, ValidateEdge(Edge{Source: "a", Target: "b", Label: Successor.Inverse()}))
	require.Error(t, ValidateEdge(NewSuccessor("", "b")))
	require.Error(t, ValidateEdge(NewSuccessor("a", "b;c")))
}
