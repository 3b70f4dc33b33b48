package graphstore

import (
	"testing"

	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStore(t *testing.T) *Memory[string] {
	m := NewMemory[string]()
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, m.AddVertex(id, "value-"+id))
	}
	for _, e := range []Edge{
		{"a", "b", "S"},
		{"b", "a", "IS"},
		{"a", "c", "S"},
		{"c", "a", "IS"},
		{"b", "d", "S"},
		{"c", "d", "S"},
		{"a", "d", "M"},
	} {
		require.NoError(t, m.AddEdge(e))
	}
	return m
}

func TestVertices(t *testing.T) {
	m := buildStore(t)
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []string{"value-a", "value-b", "value-c", "value-d"}, m.Vertices())

	v, ok := m.Vertex("c")
	require.True(t, ok)
	assert.Equal(t, "value-c", v)
	_, ok = m.Vertex("z")
	assert.False(t, ok)

	err := m.AddVertex("a", "again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDuplicateRevision))

	err = m.RemoveVertex("z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestEdges(t *testing.T) {
	m := buildStore(t)

	assert.Len(t, m.Edges(), 7)
	assert.Equal(t, []Edge{{"a", "b", "S"}, {"a", "c", "S"}, {"b", "d", "S"}, {"c", "d", "S"}}, m.Edges("S"))
	assert.Equal(t, []Edge{{"a", "b", "S"}, {"a", "c", "S"}, {"a", "d", "M"}}, m.OutEdges("a", "S", "M"))
	assert.Equal(t, []Edge{{"b", "d", "S"}, {"c", "d", "S"}}, m.InEdges("d", "S"))
	assert.Equal(t, []Edge{{"a", "d", "M"}}, m.InEdges("d", "M"))
	assert.Empty(t, m.OutEdges("d"))
	assert.Nil(t, m.InEdges("z"))

	assert.True(t, m.HasEdge(Edge{"a", "d", "M"}))
	assert.False(t, m.HasEdge(Edge{"a", "d", "S"}))

	err := m.AddEdge(Edge{"a", "z", "S"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	require.True(t, m.RemoveEdge(Edge{"a", "d", "M"}))
	assert.False(t, m.RemoveEdge(Edge{"a", "d", "M"}))
	assert.Empty(t, m.InEdges("d", "M"))
}

func TestParallelEdges(t *testing.T) {
	m := NewMemory[int]()
	require.NoError(t, m.AddVertex("x", 1))
	require.NoError(t, m.AddVertex("y", 2))
	e := Edge{"x", "y", "S"}
	require.NoError(t, m.AddEdge(e))
	require.NoError(t, m.AddEdge(e))
	assert.Len(t, m.InEdges("y"), 2)

	require.True(t, m.RemoveEdge(e))
	assert.Len(t, m.InEdges("y"), 1)
	assert.Len(t, m.OutEdges("x"), 1)
}

func TestRemoveVertex(t *testing.T) {
	m := buildStore(t)
	require.NoError(t, m.RemoveVertex("b"))

	assert.False(t, m.HasVertex("b"))
	assert.Equal(t, []string{"value-a", "value-c", "value-d"}, m.Vertices())
	assert.Equal(t, []Edge{{"a", "c", "S"}, {"a", "d", "M"}}, m.OutEdges("a"))
	assert.Equal(t, []Edge{{"c", "a", "IS"}}, m.InEdges("a"))
	assert.Equal(t, []Edge{{"c", "d", "S"}, {"a", "d", "M"}}, m.InEdges("d"))

	// index is kept consistent after removal
	v, ok := m.Vertex("d")
	require.True(t, ok)
	assert.Equal(t, "value-d", v)
	require.NoError(t, m.AddVertex("b", "new-b"))
	require.NoError(t, m.AddEdge(Edge{"d", "b", "S"}))
	assert.Equal(t, []Edge{{"d", "b", "S"}}, m.InEdges("b"))
}

func TestClone(t *testing.T) {
	m := buildStore(t)
	c := m.Clone()

	require.NoError(t, c.RemoveVertex("a"))
	require.NoError(t, c.AddVertex("e", "value-e"))
	require.NoError(t, c.AddEdge(Edge{"d", "e", "S"}))

	assert.Equal(t, 4, m.Len())
	assert.True(t, m.HasVertex("a"))
	assert.False(t, m.HasVertex("e"))
	assert.Len(t, m.Edges(), 7)
	assert.Empty(t, m.OutEdges("d"))

	assert.Equal(t, 4, c.Len())
	assert.Len(t, c.Edges(), 3)
}
