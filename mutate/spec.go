package mutate

import (
	"github.com/signadot/flowgraph/graph"
)

// NodeSpec describes a node to add, along with the nodes to add below
// it.
type NodeSpec struct {
	ID       string              `json:"id,omitempty"`
	Type     graph.ComponentType `json:"type,omitempty"`
	Data     map[string]any      `json:"data,omitempty"`
	Children []NodeSpec          `json:"children,omitempty"`
}

func (s NodeSpec) node() graph.Node {
	n := graph.Node{Type: s.Type}
	if s.Data != nil {
		if d := sanitizeMap(s.Data); len(d) != 0 {
			n.Data = d
		}
	}
	return n
}

// SpecFrom rebuilds the tree of specs below id from the flat node set r,
// so that it can be added elsewhere in one mutation.  A node reached a
// second time is given without children.
func SpecFrom(r graph.Reader, id string) (NodeSpec, error) {
	if _, ok := r.Get(id); !ok {
		return NodeSpec{}, ErrIDNotFound
	}
	return specFrom(r, id, map[string]bool{}), nil
}

func specFrom(r graph.Reader, id string, visited map[string]bool) NodeSpec {
	n, _ := r.Get(id)
	s := NodeSpec{ID: id, Type: n.Type, Data: graph.CloneData(n.Data)}
	if visited[id] {
		return s
	}
	visited[id] = true
	for _, c := range n.Edges {
		if _, ok := r.Get(c); !ok {
			continue
		}
		s.Children = append(s.Children, specFrom(r, c, visited))
	}
	return s
}
