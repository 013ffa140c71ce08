package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RootKey is the id of the entry whose edges list the top level steps of
// a flow.
const RootKey = "_root"

// Graph is an ordered mapping from node id to Node.  Key order is kept
// when decoding and encoding.
//
// Graphs are treated as immutable values: mutations produce new graphs
// sharing unchanged nodes with their input.  A nil *Graph is empty.
type Graph struct {
	ids   []string
	nodes map[string]Node
}

// Entry pairs a node with its id.
type Entry struct {
	ID   string
	Node Node
}

// Reader is the read only view of a graph used by queries.
type Reader interface {
	IDs() []string
	Get(id string) (Node, bool)
}

func New() *Graph {
	return &Graph{nodes: map[string]Node{}}
}

// FromEntries builds a graph with the entries in order.  A repeated id
// keeps its first position and its last node.
func FromEntries(es ...Entry) *Graph {
	g := &Graph{ids: make([]string, 0, len(es)), nodes: make(map[string]Node, len(es))}
	for _, e := range es {
		g.set(e.ID, e.Node)
	}
	return g
}

func (g *Graph) set(id string, n Node) {
	if _, ok := g.nodes[id]; !ok {
		g.ids = append(g.ids, id)
	}
	g.nodes[id] = n
}

// Parse decodes a json graph document.
func Parse(d []byte) (*Graph, error) {
	g := New()
	if err := g.UnmarshalJSON(d); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.ids)
}

// IDs returns a copy of the ids in key order.
func (g *Graph) IDs() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.ids...)
}

func (g *Graph) Has(id string) bool {
	if g == nil {
		return false
	}
	_, ok := g.nodes[id]
	return ok
}

// Get returns the node stored under id.  The node shares its data and
// edges with the graph; callers must not modify them.
func (g *Graph) Get(id string) (Node, bool) {
	if g == nil {
		return Node{}, false
	}
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Entries() []Entry {
	if g == nil {
		return nil
	}
	res := make([]Entry, len(g.ids))
	for i, id := range g.ids {
		res[i] = Entry{ID: id, Node: g.nodes[id]}
	}
	return res
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	res := New()
	for _, e := range g.Entries() {
		res.set(e.ID, e.Node.Clone())
	}
	return res
}

// Value returns the graph as a generic json object.
func (g *Graph) Value() map[string]any {
	res := make(map[string]any, g.Len())
	for _, e := range g.Entries() {
		res[e.ID] = e.Node.Value()
	}
	return res
}

func (g *Graph) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, e := range g.Entries() {
		if i != 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		d, err := e.Node.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(d)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *Graph) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		g.ids, g.nodes = nil, map[string]Node{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}
	res := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected key %v", ErrNotObject, tok)
		}
		n := Node{}
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("node %q: %w", id, err)
		}
		res.set(id, n)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = *res
	return nil
}
