package mutate

import (
	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/draft"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// Move detaches id from parent and lists it under toParent, appended or
// in front of the configured sibling.  An empty toParent moves within
// parent.
func Move(g *graph.Graph, id, parent, toParent string, opts ...Opt) (*graph.Graph, []ot.Op, error) {
	cfg := config(opts)
	if toParent == "" {
		toParent = parent
	}
	if debug.Mutate() {
		debug.Logf("move %q from %q to %q before %q\n", id, parent, toParent, cfg.Before)
	}
	res, ops, err := draft.Produce(g, func(d *draft.Draft) error {
		if !d.Has(id) {
			return ErrIDNotFound
		}
		pn := d.Node(parent)
		if pn == nil {
			return ErrParentNotFound
		}
		to, ok := d.Get(toParent)
		if !ok {
			return ErrToParentNotFound
		}
		if parent != toParent && to.HasEdge(id) {
			return ErrMoveToSameParent
		}
		if n, _ := d.Get(id); n.Type == graph.TypeSection && !sectionHome(d, toParent) {
			return ErrSectionMove
		}
		idx := pn.IndexOf(id)
		if idx < 0 {
			return ErrNotConnected
		}
		if len(pn.Edges()) == 1 {
			pn.DeleteEdges()
		} else {
			pn.RemoveEdge(idx)
		}
		if err := insert(d.Node(toParent), id, cfg.Before); err != nil {
			return err
		}
		if graph.IsCyclic(d) {
			return ErrCycle
		}
		return nil
	})
	if err != nil && debug.Mutate() {
		debug.Logf("move %q: %v\n", id, err)
	}
	return res, ops, err
}

// sectionHome reports whether a section may be moved below parent: the
// root, or a folder listed directly by the root.
func sectionHome(r graph.Reader, parent string) bool {
	if parent == graph.RootKey {
		return true
	}
	n, _ := r.Get(parent)
	root, _ := r.Get(graph.RootKey)
	return n.Type == graph.TypeInternalPortal && root.HasEdge(parent)
}

// insert lists id in the edges of nd, in front of before or last.
func insert(nd *draft.NodeDraft, id, before string) error {
	nd.EnsureEdges()
	idx := len(nd.Edges())
	if before != "" {
		idx = nd.IndexOf(before)
		if idx < 0 {
			return ErrToBeforeNotFound
		}
	}
	nd.InsertEdge(idx, id)
	return nil
}
