package mutate

import (
	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/draft"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// MakeUnique replaces the link from parent to the shared node id with a
// copy of id under a new id, placed where id was.  Descendants are copied
// too, except those which are themselves shared: the copy lists those.
// An empty parent means the root.
func MakeUnique(g *graph.Graph, id, parent string, opts ...Opt) (*graph.Graph, []ot.Op, error) {
	cfg := config(opts)
	if parent == "" {
		parent = graph.RootKey
	}
	if debug.Mutate() {
		debug.Logf("make unique %q under %q\n", id, parent)
	}
	res, ops, err := draft.Produce(g, func(d *draft.Draft) error {
		if !d.Has(id) {
			return ErrIDNotFound
		}
		pn, ok := d.Get(parent)
		if !ok {
			return ErrParentNotFound
		}
		if !pn.HasEdge(id) {
			return ErrNotInParent
		}
		a := newAdder(d, cfg.IDs)
		if err := copyNode(a, id, parent, id, true); err != nil {
			return err
		}
		return remove(d, id, parent)
	})
	if err != nil && debug.Mutate() {
		debug.Logf("make unique %q: %v\n", id, err)
	}
	return res, ops, err
}

func copyNode(a *adder, id, parent, before string, first bool) error {
	n, _ := a.d.Get(id)
	if !first && graph.IsClone(a.d, id) {
		return a.link(id, parent)
	}
	newID := a.ids()
	spec := NodeSpec{ID: newID, Type: n.Type, Data: graph.CloneData(n.Data)}
	if err := a.add(spec, parent, before); err != nil {
		return err
	}
	for _, c := range n.Edges {
		if err := copyNode(a, c, newID, "", false); err != nil {
			return err
		}
	}
	return nil
}
