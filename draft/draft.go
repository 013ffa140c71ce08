// Package draft derives json0 ops from graph mutations.
//
// A Draft is a copy-on-write view of a graph.  Recipes mutate it freely;
// finalizing the draft yields the new graph, which shares unchanged nodes
// with the base, together with generic forward and inverse patches from
// which the ops are derived.
package draft

import (
	"slices"

	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// Draft is a mutable view of a base graph.  It implements graph.Reader
// over its current state.
type Draft struct {
	base     *graph.Graph
	ids      []string
	nodes    map[string]*NodeDraft
	deleted  map[string]bool
	assigned assigned
}

func New(base *graph.Graph) *Draft {
	return &Draft{
		base:    base,
		nodes:   map[string]*NodeDraft{},
		deleted: map[string]bool{},
	}
}

// Produce runs recipe against a draft of g.  On success it returns the
// resulting graph and the ops transforming g into it.  On error nothing
// of the draft survives.
func Produce(g *graph.Graph, recipe func(d *Draft) error) (*graph.Graph, []ot.Op, error) {
	d := New(g)
	if err := recipe(d); err != nil {
		return nil, nil, err
	}
	res, fwd, inv := d.Finalize()
	ops := ToOps(fwd, inv)
	if debug.Ops() {
		debug.Logf("ops %v\n", ops)
	}
	return res, ops, nil
}

func (d *Draft) Has(id string) bool {
	if d.deleted[id] {
		return false
	}
	if _, ok := d.nodes[id]; ok {
		return true
	}
	return d.base.Has(id)
}

// IDs returns the current ids in key order.
func (d *Draft) IDs() []string {
	if d.ids == nil {
		return d.base.IDs()
	}
	return slices.Clone(d.ids)
}

// Get returns the current node under id.  The node may share storage
// with the draft and must not be modified.
func (d *Draft) Get(id string) (graph.Node, bool) {
	if !d.Has(id) {
		return graph.Node{}, false
	}
	if nd, ok := d.nodes[id]; ok {
		return nd.node, true
	}
	return d.base.Get(id)
}

// Node returns a mutable draft of the node under id, or nil if there is
// none.
func (d *Draft) Node(id string) *NodeDraft {
	if !d.Has(id) {
		return nil
	}
	if nd, ok := d.nodes[id]; ok {
		return nd
	}
	n, _ := d.base.Get(id)
	nd := &NodeDraft{id: id, base: n, node: n}
	d.nodes[id] = nd
	return nd
}

// Create stores a copy of n under id, replacing any current node, and
// returns its draft.  A created node is emitted whole.
func (d *Draft) Create(id string, n graph.Node) *NodeDraft {
	if !d.Has(id) {
		d.initIDs()
		d.ids = append(d.ids, id)
	}
	delete(d.deleted, id)
	nd := &NodeDraft{id: id, raw: true, node: n.Clone()}
	d.nodes[id] = nd
	d.assigned.mark(id, true)
	return nd
}

// Delete removes id.  Deleting an absent id does nothing.
func (d *Draft) Delete(id string) {
	if !d.Has(id) {
		return
	}
	d.initIDs()
	d.ids = slices.DeleteFunc(d.ids, func(x string) bool { return x == id })
	delete(d.nodes, id)
	if d.base.Has(id) {
		d.deleted[id] = true
		d.assigned.mark(id, false)
		return
	}
	d.assigned.forget(id)
}

func (d *Draft) initIDs() {
	if d.ids == nil {
		d.ids = d.base.IDs()
		if d.ids == nil {
			d.ids = []string{}
		}
	}
}

// Finalize returns the resulting graph and the forward and inverse
// patches, index aligned.  Patches of nodes changed in place come first,
// in key order, followed by those of created and deleted nodes in the
// order they were first created or deleted.
func (d *Draft) Finalize() (*graph.Graph, []Patch, []Patch) {
	var fwd, inv []Patch
	ids := d.IDs()
	es := make([]graph.Entry, len(ids))
	for i, id := range ids {
		nd, ok := d.nodes[id]
		if !ok {
			n, _ := d.base.Get(id)
			es[i] = graph.Entry{ID: id, Node: n}
			continue
		}
		es[i] = graph.Entry{ID: id, Node: nd.node}
		if !nd.raw {
			fwd, inv = nd.patches(fwd, inv)
		}
	}
	d.assigned.each(func(id string, set bool) {
		path := ot.Path{id}
		orig, inBase := d.base.Get(id)
		switch {
		case !set:
			fwd = append(fwd, Patch{Op: Remove, Path: path})
			inv = append(inv, Patch{Op: Add, Path: path, Value: orig.Clone()})
		case inBase:
			fwd = append(fwd, Patch{Op: Replace, Path: path, Value: d.nodes[id].node.Clone()})
			inv = append(inv, Patch{Op: Replace, Path: path, Value: orig.Clone()})
		default:
			fwd = append(fwd, Patch{Op: Add, Path: path, Value: d.nodes[id].node.Clone()})
			inv = append(inv, Patch{Op: Remove, Path: path})
		}
	})
	if debug.Draft() {
		for i := range fwd {
			debug.Logf("patch %s / %s\n", fwd[i], inv[i])
		}
	}
	return graph.FromEntries(es...), fwd, inv
}
