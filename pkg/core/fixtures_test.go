package core

import (
	"strings"
	"testing"

	"github.com/oneconcern/revmon/pkg/model"
	"github.com/stretchr/testify/require"
)

func revisions(graphID string, ids ...string) []model.Revision {
	res := make([]model.Revision, 0, len(ids))
	for _, id := range ids {
		short := id[strings.LastIndex(id, ".")+1:]
		res = append(res, model.Revision{
			GraphID:     graphID,
			ID:          id,
			Description: strings.ToUpper(id),
			Location:    "./" + short,
		})
	}
	return res
}

func successors(pairs ...string) []model.Edge {
	res := make([]model.Edge, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		res = append(res, model.NewSuccessor(pairs[i], pairs[i+1]))
	}
	return res
}

// historyFixture builds the following history:
//
//	             /---> g --> p
//	a --> b --> e --> f
//	\---> c --> h ---\
//	 \ ============== > j ---> k
//	  \--> d --------/
func historyFixture(prefix string) model.GraphDescriptor {
	id := func(s string) string { return prefix + s }
	graphID := "g1"
	if prefix != "" {
		graphID = strings.TrimSuffix(prefix, ".")
	}
	ids := make([]string, 0, 11)
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "j", "k", "p"} {
		ids = append(ids, id(s))
	}
	return model.GraphDescriptor{
		ID:        graphID,
		Revisions: revisions(graphID, ids...),
		Edges: append(successors(
			id("a"), id("b"),
			id("a"), id("c"),
			id("a"), id("d"),
			id("b"), id("e"),
			id("c"), id("h"),
			id("h"), id("j"),
			id("d"), id("j"),
			id("j"), id("k"),
			id("e"), id("f"),
			id("e"), id("g"),
			id("g"), id("p"),
		), model.NewMerge(id("a"), id("j"))),
	}
}

// validFixture builds the following history:
//
//	a --> b --> e --> f --> g
//	      \---> c --/
func validFixture() model.GraphDescriptor {
	return model.GraphDescriptor{
		ID:        "g1",
		Revisions: revisions("g1", "a", "b", "c", "e", "f", "g"),
		Edges: append(successors(
			"a", "b",
			"b", "c",
			"b", "e",
			"c", "f",
			"e", "f",
			"f", "g",
		), model.NewMerge("b", "f")),
	}
}

// systemFixture builds two graphs:
//
//	X
//	             /---> g --> p
//	a --> b --> e --> f
//	\---> c --> h ---\
//	 \ ============== > j ---> k
//	  \--> d --------/
//
//	Y
//	            /---> x
//	a --> b --> c --> y
//	            \---> z
//
// with relations Y.x -> X.k, X.p -> Y.z and a projection A = X.a + Y.a
func systemFixture() model.SystemDescriptor {
	return model.SystemDescriptor{
		Graphs: model.GraphDescriptors{
			historyFixture("X."),
			{
				ID:        "Y",
				Revisions: revisions("Y", "Y.a", "Y.b", "Y.c", "Y.x", "Y.y", "Y.z"),
				Edges: successors(
					"Y.a", "Y.b",
					"Y.b", "Y.c",
					"Y.c", "Y.x",
					"Y.c", "Y.y",
					"Y.c", "Y.z",
				),
			},
		},
		Relations: []model.Relation{
			{FromGraph: "Y", ToGraph: "X", FromRevision: "Y.x", ToRevision: "X.k"},
			{FromGraph: "X", ToGraph: "Y", FromRevision: "X.p", ToRevision: "Y.z"},
		},
		Projections: []model.Projection{
			{ID: "A", Sources: []string{"X.a", "Y.a"}, Target: "A"},
		},
	}
}

func buildFixture(t testing.TB, descriptor model.GraphDescriptor) RevisionGraph {
	t.Helper()
	g, err := BuildGraph(descriptor)
	require.NoError(t, err)
	return g
}

func buildSystem(t testing.TB, opts ...Option) *System {
	t.Helper()
	s, err := Build(systemFixture(), opts...)
	require.NoError(t, err)
	return s
}

func ids(revisions []model.Revision) []string {
	return model.Revisions(revisions).IDs()
}
