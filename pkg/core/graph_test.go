package core

import (
	"math"
	"strings"
	"testing"

	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/errors"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph(t *testing.T) {
	descriptor := historyFixture("")
	g := buildFixture(t, descriptor)

	assert.Equal(t, "g1", g.GraphID())
	assert.Len(t, g.Revisions(), 11)
	assert.Len(t, g.Edges(), 12)
	assert.ElementsMatch(t, descriptor.Edges, g.Edges())
	assert.Equal(t, descriptor.Revisions, g.Revisions())

	// inverse edges are stored, but never exposed
	assert.Len(t, strings.Split(g.String(), "\n"), 24)
	assert.Contains(t, g.String(), `"a" -SUCCESSOR-> "b"`)
	assert.Contains(t, g.String(), `"b" -INVERSE_SUCCESSOR-> "a"`)
	for _, e := range g.Edges() {
		assert.False(t, e.Label.IsInverse())
	}

	described := g.Describe()
	assert.Equal(t, descriptor.Lines(), described.Lines())
}

func TestBuildGraphErrors(t *testing.T) {
	_, err := BuildGraph(model.GraphDescriptor{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidArgument))

	descriptor := historyFixture("")
	descriptor.Edges = append(descriptor.Edges, model.NewSuccessor("k", "z"))
	_, err = BuildGraph(descriptor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	descriptor = historyFixture("")
	descriptor.Revisions = append(descriptor.Revisions, descriptor.Revisions[0])
	_, err = BuildGraph(descriptor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDuplicateRevision))
}

func TestRootAndLeaves(t *testing.T) {
	g := buildFixture(t, historyFixture(""))

	root, err := g.Root()
	require.NoError(t, err)
	assert.Equal(t, "a", root.ID)
	assert.Equal(t, model.Revision{GraphID: "g1", ID: "a", Description: "A", Location: "./a"}, root)

	assert.ElementsMatch(t, []string{"f", "k", "p"}, ids(g.Leaves()))

	_, err = NewGraph("empty").Root()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrRootCount))
}

func TestAddRevision(t *testing.T) {
	g := NewGraph("g1")

	require.NoError(t, g.AddRevision(model.Revision{GraphID: "g1", ID: "a"}))
	assert.True(t, g.HasRevision("a"))
	assert.False(t, g.HasRevision("b"))

	r, err := g.Revision("a")
	require.NoError(t, err)
	assert.Equal(t, "a", r.ID)

	_, err = g.Revision("b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	for _, tc := range []struct {
		name     string
		revision model.Revision
		expected error
	}{
		{name: "empty id", revision: model.Revision{GraphID: "g1"}, expected: status.ErrInvalidArgument},
		{name: "other graph", revision: model.Revision{GraphID: "g2", ID: "b"}, expected: status.ErrInvalidArgument},
		{name: "separator", revision: model.Revision{GraphID: "g1", ID: "b;c"}, expected: status.ErrInvalidArgument},
		{name: "duplicate", revision: model.Revision{GraphID: "g1", ID: "a"}, expected: status.ErrDuplicateRevision},
	} {
		err := g.AddRevision(tc.revision)
		require.Errorf(t, err, "expected an error for %s", tc.name)
		assert.Truef(t, errors.Is(err, tc.expected), "unexpected error for %s: %v", tc.name, err)
	}
	assert.Len(t, g.Revisions(), 1)
}

func TestAddAndRemoveEdge(t *testing.T) {
	g := NewGraph("g1")
	for _, r := range revisions("g1", "a", "b") {
		require.NoError(t, g.AddRevision(r))
	}

	e := model.NewSuccessor("a", "b")
	require.NoError(t, g.AddEdge(e))
	assert.True(t, g.HasEdge(e))
	assert.False(t, g.HasEdge(model.NewMerge("a", "b")))
	assert.False(t, g.HasEdge(model.NewSuccessor("b", "a")))

	err := g.AddEdge(model.NewSuccessor("a", "z"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	err = g.AddEdge(model.Edge{Source: "a", Target: "b", Label: "INVERSE_SUCCESSOR"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidArgument))

	require.NoError(t, g.RemoveEdge(e))
	assert.False(t, g.HasEdge(e))
	assert.Empty(t, g.Edges())
	assert.Empty(t, g.String())

	err = g.RemoveEdge(e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestRemoveRevision(t *testing.T) {
	g := buildFixture(t, historyFixture(""))

	require.NoError(t, g.RemoveRevision("e"))
	assert.False(t, g.HasRevision("e"))
	assert.Len(t, g.Revisions(), 10)
	assert.Len(t, g.Edges(), 9)
	for _, e := range g.Edges() {
		assert.NotEqual(t, "e", e.Source)
		assert.NotEqual(t, "e", e.Target)
	}
	assert.NotContains(t, g.String(), `"e"`)

	err := g.RemoveRevision("e")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestPathToRoot(t *testing.T) {
	g := buildFixture(t, historyFixture(""))

	for _, tc := range []struct {
		from     string
		length   int
		expected []string
	}{
		{from: "f", length: 0, expected: []string{"f"}},
		{from: "f", length: 1, expected: []string{"f", "e"}},
		{from: "f", length: 2, expected: []string{"f", "e", "b"}},
		{from: "f", length: 10, expected: []string{"f", "e", "b", "a"}},
		{from: "f", length: model.Unbounded, expected: []string{"f", "e", "b", "a"}},
		{from: "p", length: model.Unbounded, expected: []string{"p", "g", "e", "b", "a"}},
		{from: "e", length: model.Unbounded, expected: []string{"e", "b", "a"}},
		{from: "a", length: model.Unbounded, expected: []string{"a"}},
		// merge short-cuts
		{from: "k", length: model.Unbounded, expected: []string{"k", "j", "a"}},
		{from: "j", length: 1, expected: []string{"j", "a"}},
	} {
		path, err := g.PathToRoot(tc.from, tc.length)
		require.NoError(t, err)
		assert.Equalf(t, tc.expected, ids(path), "path to root from %q with length %d", tc.from, tc.length)
	}

	_, err := g.PathToRoot("z", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	_, err = g.PathToRoot("f", -2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidArgument))
}

func TestPathToRootCycle(t *testing.T) {
	g := NewGraph("g1")
	for _, r := range revisions("g1", "r", "a", "b") {
		require.NoError(t, g.AddRevision(r))
	}
	for _, e := range successors("a", "b", "b", "a", "r", "a") {
		require.NoError(t, g.AddEdge(e))
	}

	_, err := g.PathToRoot("b", model.Unbounded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrCycle))
}

func TestNeighbors(t *testing.T) {
	g := buildFixture(t, historyFixture(""))

	for _, tc := range []struct {
		from     string
		depth    int
		expected []string
	}{
		{from: "p", depth: 0, expected: []string{"p"}},
		{from: "p", depth: 1, expected: []string{"p"}},
		{from: "p", depth: 2, expected: []string{"f", "p"}},
		{from: "p", depth: model.Unbounded, expected: []string{"f", "k", "p"}},
		{from: "e", depth: 1, expected: []string{"e", "f", "p"}},
		{from: "a", depth: 1, expected: []string{"a", "f", "k", "p"}},
	} {
		neighbors, err := g.Neighbors(tc.from, tc.depth)
		require.NoError(t, err)
		assert.ElementsMatchf(t, tc.expected, ids(neighbors), "neighbors of %q with depth %d", tc.from, tc.depth)
	}
}

func TestLeastCommonAncestor(t *testing.T) {
	g := buildFixture(t, historyFixture(""))

	for _, tc := range []struct {
		a, b     string
		expected string
	}{
		{a: "f", b: "k", expected: "a"},
		{a: "k", b: "f", expected: "a"},
		{a: "p", b: "f", expected: "e"},
		{a: "f", b: "p", expected: "e"},
		{a: "f", b: "f", expected: "f"},
		{a: "h", b: "d", expected: "a"},
	} {
		lca, err := g.LeastCommonAncestor(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equalf(t, tc.expected, lca.ID, "least common ancestor of %q and %q", tc.a, tc.b)
	}

	_, err := g.LeastCommonAncestor("f", "z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestAddRevisionWithUnification(t *testing.T) {
	g := buildFixture(t, historyFixture(""))
	x := model.Revision{GraphID: "g1", ID: "x", Description: "X", Location: "./x"}

	require.NoError(t, g.AddRevisionWithUnification(x, model.NewSuccessor("p", "x"), model.NewSuccessor("f", "x")))
	assert.True(t, g.HasRevision("x"))
	assert.True(t, g.HasEdge(model.NewMerge("e", "x")))

	path, err := g.PathToRoot("x", model.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "e", "b", "a"}, ids(path))
	require.NoError(t, g.Validate(DefaultLookahead))

	y := model.Revision{GraphID: "g1", ID: "y"}
	err = g.AddRevisionWithUnification(y, model.NewSuccessor("k", "y"), model.NewSuccessor("f", "x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidArgument))
	assert.False(t, g.HasRevision("y"))

	err = g.AddRevisionWithUnification(y, model.NewSuccessor("k", "y"), model.NewSuccessor("z", "y"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
	assert.False(t, g.HasRevision("y"))

	err = g.AddRevisionWithUnification(y, model.NewMerge("k", "y"), model.NewSuccessor("x", "y"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidArgument))
	assert.False(t, g.HasRevision("y"))
	assert.False(t, g.HasEdge(model.NewMerge("k", "y")))
}

func TestClone(t *testing.T) {
	g := buildFixture(t, historyFixture(""))
	c := g.Clone()

	require.NoError(t, c.RemoveRevision("a"))
	assert.True(t, g.HasRevision("a"))
	assert.Len(t, g.Edges(), 12)
	assert.Equal(t, "g1", c.GraphID())
}

func TestGraphQuery(t *testing.T) {
	descriptor := historyFixture("")
	q := NewGraphQuery(buildFixture(t, descriptor))

	root, err := q.Root()
	require.NoError(t, err)
	assert.Equal(t, descriptor.Revisions[0], root)
	assert.ElementsMatch(t, descriptor.Edges, q.Edges())
	assert.ElementsMatch(t, descriptor.Revisions, q.Revisions())

	region, err := q.FindRegion("f", model.Time, model.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, model.Time, region.Axis)
	assert.Equal(t, math.MaxInt, region.Cardinality)
	assert.Equal(t, []string{"a", "b", "e", "f"}, region.IDs())

	region, err = q.FindRegion("f", model.Time, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, region.Cardinality)
	assert.Equal(t, []string{"b", "e", "f"}, region.IDs())

	region, err = q.FindRegion("k", model.Time, model.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "j", "k"}, region.IDs())

	region, err = q.FindRegion("e", model.Space, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Space, region.Axis)
	assert.Equal(t, 1, region.Cardinality)
	assert.Equal(t, []string{"e", "f", "p"}, region.IDs())

	_, err = q.FindRegion("e", model.Relational, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidArgument))

	_, err = q.FindRegion("e", model.Space, -3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidArgument))

	_, err = q.FindRegion("z", model.Space, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	require.NoError(t, q.AddRevision(model.Revision{GraphID: "g1", ID: "q"}))
	require.NoError(t, q.AddEdge(model.NewSuccessor("k", "q")))
	assert.Len(t, q.Edges(), 13)
	require.NoError(t, q.RemoveEdge(model.NewSuccessor("k", "q")))
	require.NoError(t, q.RemoveRevision("q"))
	assert.Len(t, q.Revisions(), 11)
}
