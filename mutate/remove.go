package mutate

import (
	"slices"

	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/draft"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// Remove detaches id from parent.  A parent other than the root left
// with no type, data or edges, and listed by no other node, is deleted.
// When nothing else lists id, its children are removed from it by the
// same rule and id is deleted.
func Remove(g *graph.Graph, id, parent string) (*graph.Graph, []ot.Op, error) {
	if debug.Mutate() {
		debug.Logf("remove %q from %q\n", id, parent)
	}
	res, ops, err := draft.Produce(g, func(d *draft.Draft) error {
		return remove(d, id, parent)
	})
	if err != nil && debug.Mutate() {
		debug.Logf("remove %q: %v\n", id, err)
	}
	return res, ops, err
}

func remove(d *draft.Draft, id, parent string) error {
	if !d.Has(id) {
		return ErrIDNotFound
	}
	pn := d.Node(parent)
	if pn == nil {
		return ErrParentNotFound
	}
	idx := pn.IndexOf(id)
	if idx < 0 {
		return ErrNotInParent
	}
	if len(pn.Edges()) == 1 {
		pn.DeleteEdges()
	} else {
		pn.RemoveEdge(idx)
	}
	if parent != graph.RootKey && pn.Empty() && graph.NumberOfEdgesTo(d, parent) == 0 {
		d.Delete(parent)
	}
	return prune(d, id)
}

// prune deletes id along with the descendants only it lists, unless
// something still lists id.  The root is never pruned.
func prune(d *draft.Draft, id string) error {
	if id == graph.RootKey || graph.NumberOfEdgesTo(d, id) != 0 {
		return nil
	}
	if nd := d.Node(id); nd != nil {
		for _, c := range slices.Clone(nd.Edges()) {
			if err := remove(d, c, id); err != nil {
				return err
			}
		}
	}
	d.Delete(id)
	return nil
}
