package draft

import (
	"maps"
	"slices"

	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// NodeDraft is a mutable node of a Draft.
//
// A node created in the draft is raw: it is changed directly and emitted
// whole.  A node of the base graph is tracked: its data and edges are
// copied on first write, and the changes recorded per key and per index.
type NodeDraft struct {
	id   string
	raw  bool
	base graph.Node
	node graph.Node

	assigned assigned
	// data and edges are set while node.Data (resp. node.Edges) is a copy
	// of the base being changed in place.
	data  *assigned
	edges bool
}

func (nd *NodeDraft) ID() string {
	return nd.id
}

// Node returns the current node.  It shares storage with the draft.
func (nd *NodeDraft) Node() graph.Node {
	return nd.node
}

func (nd *NodeDraft) Type() graph.ComponentType {
	return nd.node.Type
}

func (nd *NodeDraft) Edges() []string {
	return nd.node.Edges
}

func (nd *NodeDraft) Data() map[string]any {
	return nd.node.Data
}

// Empty reports whether the node has no type, data or edges key.
func (nd *NodeDraft) Empty() bool {
	return nd.node.IsEmpty()
}

func (nd *NodeDraft) SetType(t graph.ComponentType) {
	if t == nd.node.Type {
		return
	}
	nd.node.Type = t
	if nd.raw {
		return
	}
	if t == 0 {
		nd.unset("type", nd.base.Type != 0)
		return
	}
	nd.assigned.mark("type", true)
}

// SetData replaces the whole data payload.
func (nd *NodeDraft) SetData(data map[string]any) {
	nd.node.Data = data
	nd.data = nil
	if !nd.raw {
		nd.assigned.mark("data", true)
	}
}

// DeleteData removes the data key.
func (nd *NodeDraft) DeleteData() {
	nd.node.Data = nil
	nd.data = nil
	if !nd.raw {
		nd.unset("data", nd.base.Data != nil)
	}
}

// SetDataKey sets one key of the data payload, creating the payload if
// the node has none.  Setting a scalar to its current value does nothing.
func (nd *NodeDraft) SetDataKey(k string, v any) {
	if nd.node.Data == nil {
		nd.SetData(map[string]any{k: v})
		return
	}
	if cur, ok := nd.node.Data[k]; ok && sameScalar(cur, v) {
		return
	}
	if nd.tracksData() {
		nd.data.mark(k, true)
	}
	nd.node.Data[k] = v
}

// DeleteDataKey deletes one key of the data payload.
func (nd *NodeDraft) DeleteDataKey(k string) {
	if nd.node.Data == nil {
		return
	}
	if nd.tracksData() {
		if _, ok := nd.base.Data[k]; ok {
			nd.data.mark(k, false)
		} else {
			nd.data.forget(k)
		}
	}
	delete(nd.node.Data, k)
}

// tracksData prepares node.Data for writing in place and reports whether
// the writes are to be recorded.
func (nd *NodeDraft) tracksData() bool {
	if nd.raw || nd.assigned.has("data") {
		return false
	}
	if nd.data == nil {
		nd.data = &assigned{}
		nd.node.Data = maps.Clone(nd.base.Data)
	}
	return true
}

// SetEdges replaces the whole edges list.
func (nd *NodeDraft) SetEdges(edges []string) {
	nd.node.Edges = edges
	nd.edges = false
	if !nd.raw {
		nd.assigned.mark("edges", true)
	}
}

// EnsureEdges gives the node an empty edges list if it has none.
func (nd *NodeDraft) EnsureEdges() {
	if nd.node.Edges == nil {
		nd.SetEdges([]string{})
	}
}

// DeleteEdges removes the edges key.
func (nd *NodeDraft) DeleteEdges() {
	nd.node.Edges = nil
	nd.edges = false
	if !nd.raw {
		nd.unset("edges", nd.base.Edges != nil)
	}
}

// InsertEdge inserts id at index i of the edges, creating them if
// missing.
func (nd *NodeDraft) InsertEdge(i int, id string) {
	nd.EnsureEdges()
	nd.writeEdges()
	nd.node.Edges = slices.Insert(nd.node.Edges, i, id)
}

func (nd *NodeDraft) AppendEdge(id string) {
	nd.InsertEdge(len(nd.node.Edges), id)
}

// RemoveEdge removes the edge at index i.
func (nd *NodeDraft) RemoveEdge(i int) {
	nd.writeEdges()
	nd.node.Edges = slices.Delete(nd.node.Edges, i, i+1)
}

// IndexOf returns the index of id in the edges, or -1.
func (nd *NodeDraft) IndexOf(id string) int {
	return slices.Index(nd.node.Edges, id)
}

func (nd *NodeDraft) writeEdges() {
	if nd.raw || nd.assigned.has("edges") || nd.edges {
		return
	}
	nd.edges = true
	nd.node.Edges = slices.Clone(nd.base.Edges)
}

func (nd *NodeDraft) unset(k string, inBase bool) {
	if inBase {
		nd.assigned.mark(k, false)
		return
	}
	nd.assigned.forget(k)
}

// patches appends the changes of a tracked node: the data keys written in
// place, then the edges indices, then the keys of the node itself.
func (nd *NodeDraft) patches(fwd, inv []Patch) ([]Patch, []Patch) {
	if nd.data != nil {
		nd.data.each(func(k string, set bool) {
			path := ot.Path{nd.id, "data", k}
			orig, inBase := nd.base.Data[k]
			cur := nd.node.Data[k]
			switch {
			case !set:
				fwd = append(fwd, Patch{Op: Remove, Path: path})
				inv = append(inv, Patch{Op: Add, Path: path, Value: graph.CloneValue(orig)})
			case inBase:
				if sameScalar(orig, cur) {
					return
				}
				fwd = append(fwd, Patch{Op: Replace, Path: path, Value: graph.CloneValue(cur)})
				inv = append(inv, Patch{Op: Replace, Path: path, Value: graph.CloneValue(orig)})
			default:
				fwd = append(fwd, Patch{Op: Add, Path: path, Value: graph.CloneValue(cur)})
				inv = append(inv, Patch{Op: Remove, Path: path})
			}
		})
	}
	if nd.edges {
		fwd, inv = diffEdges(ot.Path{nd.id, "edges"}, nd.base.Edges, nd.node.Edges, fwd, inv)
	}
	nd.assigned.each(func(k string, set bool) {
		path := ot.Path{nd.id, k}
		orig, inBase := field(nd.base, k)
		cur, _ := field(nd.node, k)
		switch {
		case !set:
			fwd = append(fwd, Patch{Op: Remove, Path: path})
			inv = append(inv, Patch{Op: Add, Path: path, Value: orig})
		case inBase:
			fwd = append(fwd, Patch{Op: Replace, Path: path, Value: cur})
			inv = append(inv, Patch{Op: Replace, Path: path, Value: orig})
		default:
			fwd = append(fwd, Patch{Op: Add, Path: path, Value: cur})
			inv = append(inv, Patch{Op: Remove, Path: path})
		}
	})
	return fwd, inv
}

// diffEdges compares an edges list with its base index by index.  Growth
// is recorded as adds at the new indices, shrinkage as length changes,
// from the tail, whose inverses restore the removed entries.
func diffEdges(path ot.Path, base, cur []string, fwd, inv []Patch) ([]Patch, []Patch) {
	at := func(i any) ot.Path {
		return append(slices.Clone(path), i)
	}
	for i := range min(len(base), len(cur)) {
		if base[i] == cur[i] {
			continue
		}
		fwd = append(fwd, Patch{Op: Replace, Path: at(i), Value: cur[i]})
		inv = append(inv, Patch{Op: Replace, Path: at(i), Value: base[i]})
	}
	for i := len(base); i < len(cur); i++ {
		fwd = append(fwd, Patch{Op: Add, Path: at(i), Value: cur[i]})
		inv = append(inv, Patch{Op: Replace, Path: at("length"), Value: len(base)})
	}
	for i := len(base) - 1; i >= len(cur); i-- {
		fwd = append(fwd, Patch{Op: Replace, Path: at("length"), Value: i})
		inv = append(inv, Patch{Op: Add, Path: at(i), Value: base[i]})
	}
	return fwd, inv
}

// field returns a copy of the value of a node key and whether the key is
// present.
func field(n graph.Node, k string) (any, bool) {
	switch k {
	case "type":
		return n.Type, n.Type != 0
	case "data":
		return graph.CloneData(n.Data), n.Data != nil
	case "edges":
		return slices.Clone(n.Edges), n.Edges != nil
	}
	return nil, false
}

func sameScalar(a, b any) bool {
	switch a.(type) {
	case string, bool, float64, int, int64, nil:
		return a == b
	}
	return false
}
