package graphstore

import (
	"github.com/oneconcern/revmon/pkg/core/status"
)

// Edge is a labeled directed edge between two vertex ids
type Edge struct {
	Source string
	Target string
	Label  string
}

// Store knows how to keep vertices and labeled edges and to answer primitive queries on them.
//
// Implementations are not safe for concurrent use.
type Store[V any] interface {
	AddVertex(id string, value V) error
	RemoveVertex(id string) error
	Vertex(id string) (V, bool)
	HasVertex(id string) bool
	Vertices() []V
	Len() int

	AddEdge(Edge) error
	RemoveEdge(Edge) bool
	HasEdge(Edge) bool
	Edges(labels ...string) []Edge
	OutEdges(id string, labels ...string) []Edge
	InEdges(id string, labels ...string) []Edge

	Clone() Store[V]
}

var _ Store[struct{}] = NewMemory[struct{}]()

type vertex[V any] struct {
	value V
	out   []Edge
	in    []Edge
}

// Memory is an in-memory Store, with adjacency lists kept in insertion order
type Memory[V any] struct {
	index    map[string]int
	ids      []string
	vertices []*vertex[V]
}

// NewMemory builds an empty in-memory store
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		index: make(map[string]int),
	}
}

// AddVertex inserts a new vertex. It fails if the id is already taken.
func (m *Memory[V]) AddVertex(id string, value V) error {
	if _, ok := m.index[id]; ok {
		return status.ErrDuplicateRevision.Wrapf("vertex %q already exists", id)
	}
	m.index[id] = len(m.ids)
	m.ids = append(m.ids, id)
	m.vertices = append(m.vertices, &vertex[V]{value: value})
	return nil
}

// RemoveVertex removes a vertex with all the edges touching it
func (m *Memory[V]) RemoveVertex(id string) error {
	pos, ok := m.index[id]
	if !ok {
		return status.ErrNotFound.Wrapf("vertex %q", id)
	}
	v := m.vertices[pos]
	for _, e := range v.out {
		if e.Target != id {
			m.vertices[m.index[e.Target]].in = removeEdges(m.vertices[m.index[e.Target]].in, e, true)
		}
	}
	for _, e := range v.in {
		if e.Source != id {
			m.vertices[m.index[e.Source]].out = removeEdges(m.vertices[m.index[e.Source]].out, e, true)
		}
	}

	m.ids = append(m.ids[:pos], m.ids[pos+1:]...)
	m.vertices = append(m.vertices[:pos], m.vertices[pos+1:]...)
	delete(m.index, id)
	for i := pos; i < len(m.ids); i++ {
		m.index[m.ids[i]] = i
	}
	return nil
}

// Vertex retrieves the value of a vertex
func (m *Memory[V]) Vertex(id string) (V, bool) {
	pos, ok := m.index[id]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vertices[pos].value, true
}

// HasVertex tells if a vertex exists
func (m *Memory[V]) HasVertex(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Vertices returns the values of all vertices
func (m *Memory[V]) Vertices() []V {
	values := make([]V, 0, len(m.vertices))
	for _, v := range m.vertices {
		values = append(values, v.value)
	}
	return values
}

// Len is the number of vertices
func (m *Memory[V]) Len() int {
	return len(m.ids)
}

// AddEdge inserts an edge. Both endpoints must exist.
func (m *Memory[V]) AddEdge(e Edge) error {
	src, ok := m.index[e.Source]
	if !ok {
		return status.ErrNotFound.Wrapf("source vertex %q of edge", e.Source)
	}
	tgt, ok := m.index[e.Target]
	if !ok {
		return status.ErrNotFound.Wrapf("target vertex %q of edge", e.Target)
	}
	m.vertices[src].out = append(m.vertices[src].out, e)
	m.vertices[tgt].in = append(m.vertices[tgt].in, e)
	return nil
}

// RemoveEdge removes one occurrence of an edge. It returns false when no such edge exists.
func (m *Memory[V]) RemoveEdge(e Edge) bool {
	if !m.HasEdge(e) {
		return false
	}
	src := m.vertices[m.index[e.Source]]
	src.out = removeEdges(src.out, e, false)
	tgt := m.vertices[m.index[e.Target]]
	tgt.in = removeEdges(tgt.in, e, false)
	return true
}

// HasEdge tells if an edge exists
func (m *Memory[V]) HasEdge(e Edge) bool {
	pos, ok := m.index[e.Source]
	if !ok {
		return false
	}
	for _, o := range m.vertices[pos].out {
		if o == e {
			return true
		}
	}
	return false
}

// Edges returns all edges carrying one of the labels, or all edges when no label is given
func (m *Memory[V]) Edges(labels ...string) []Edge {
	var edges []Edge
	for _, v := range m.vertices {
		edges = append(edges, filter(v.out, labels)...)
	}
	return edges
}

// OutEdges returns the edges leaving a vertex, optionally restricted to some labels
func (m *Memory[V]) OutEdges(id string, labels ...string) []Edge {
	pos, ok := m.index[id]
	if !ok {
		return nil
	}
	return filter(m.vertices[pos].out, labels)
}

// InEdges returns the edges entering a vertex, optionally restricted to some labels
func (m *Memory[V]) InEdges(id string, labels ...string) []Edge {
	pos, ok := m.index[id]
	if !ok {
		return nil
	}
	return filter(m.vertices[pos].in, labels)
}

// Clone makes a deep copy of the structure. Vertex values are copied as is.
func (m *Memory[V]) Clone() Store[V] {
	c := &Memory[V]{
		index:    make(map[string]int, len(m.index)),
		ids:      append([]string(nil), m.ids...),
		vertices: make([]*vertex[V], 0, len(m.vertices)),
	}
	for k, v := range m.index {
		c.index[k] = v
	}
	for _, v := range m.vertices {
		c.vertices = append(c.vertices, &vertex[V]{
			value: v.value,
			out:   append([]Edge(nil), v.out...),
			in:    append([]Edge(nil), v.in...),
		})
	}
	return c
}

func filter(edges []Edge, labels []string) []Edge {
	res := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if len(labels) == 0 || hasLabel(labels, e.Label) {
			res = append(res, e)
		}
	}
	return res
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// removeEdges drops the first occurrence of an edge, or all of them
func removeEdges(edges []Edge, e Edge, all bool) []Edge {
	res := edges[:0]
	removed := false
	for _, o := range edges {
		if o == e && (all || !removed) {
			removed = true
			continue
		}
		res = append(res, o)
	}
	return res
}
