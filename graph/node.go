package graph

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Node is one step of a flow.  A nil Edges means the node has no edges
// key at all, which is distinct from an empty, present list.  The same
// holds for Data.
type Node struct {
	Type  ComponentType  `json:"type,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
	Edges []string       `json:"edges,omitempty"`
}

// IsEmpty reports whether the node has no type, no data and no edges key.
func (n Node) IsEmpty() bool {
	return n.Type == 0 && n.Data == nil && n.Edges == nil
}

// HasEdge reports whether id is listed in the node's edges.
func (n Node) HasEdge(id string) bool {
	return slices.Contains(n.Edges, id)
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	res := Node{Type: n.Type}
	if n.Data != nil {
		res.Data = CloneData(n.Data)
	}
	if n.Edges != nil {
		res.Edges = append(make([]string, 0, len(n.Edges)), n.Edges...)
	}
	return res
}

func (n Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	sep := false
	field := func(k string, v any) error {
		if sep {
			buf.WriteByte(',')
		}
		sep = true
		buf.WriteString(`"` + k + `":`)
		d, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(d)
		return nil
	}
	if n.Type != 0 {
		if err := field("type", int(n.Type)); err != nil {
			return nil, err
		}
	}
	if n.Data != nil {
		if err := field("data", n.Data); err != nil {
			return nil, err
		}
	}
	if n.Edges != nil {
		if err := field("edges", n.Edges); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NodeFrom converts a json compatible value, such as the payload of an
// object insert, into a Node.
func NodeFrom(v any) (Node, error) {
	if n, ok := v.(Node); ok {
		return n.Clone(), nil
	}
	d, err := json.Marshal(v)
	if err != nil {
		return Node{}, err
	}
	res := Node{}
	if err := json.Unmarshal(d, &res); err != nil {
		return Node{}, err
	}
	return res, nil
}

// Value returns the node as a generic json value.
func (n Node) Value() map[string]any {
	res := map[string]any{}
	if n.Type != 0 {
		res["type"] = float64(n.Type)
	}
	if n.Data != nil {
		res["data"] = CloneData(n.Data)
	}
	if n.Edges != nil {
		edges := make([]any, len(n.Edges))
		for i, e := range n.Edges {
			edges[i] = e
		}
		res["edges"] = edges
	}
	return res
}

// CloneData deep copies a data payload.
func CloneData(d map[string]any) map[string]any {
	if d == nil {
		return nil
	}
	return CloneValue(d).(map[string]any)
}

// CloneValue deep copies json like values: maps, slices and scalars.
func CloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, v := range x {
			res[k] = CloneValue(v)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, v := range x {
			res[i] = CloneValue(v)
		}
		return res
	case []string:
		return append(make([]string, 0, len(x)), x...)
	case Node:
		return x.Clone()
	default:
		return v
	}
}

// Equal compares two values by their json encoding, so that numbers of
// different Go types but equal value compare equal, and a Node equals its
// generic form.
func Equal(a, b any) bool {
	da, err := canonical(a)
	if err != nil {
		return false
	}
	db, err := canonical(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}

func canonical(v any) ([]byte, error) {
	switch v.(type) {
	case nil, bool, string, float64, int:
		return json.Marshal(v)
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var x any
	if err := json.Unmarshal(d, &x); err != nil {
		return nil, err
	}
	return json.Marshal(x)
}
