package mutate

import (
	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/draft"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// Clone lists the existing node id under another parent (the root by
// default), so that it is shared.
func Clone(g *graph.Graph, id string, opts ...Opt) (*graph.Graph, []ot.Op, error) {
	cfg := config(opts)
	if debug.Mutate() {
		debug.Logf("clone %q to %q before %q\n", id, cfg.Parent, cfg.Before)
	}
	res, ops, err := draft.Produce(g, func(d *draft.Draft) error {
		n, ok := d.Get(id)
		if !ok {
			return ErrIDNotFound
		}
		to := d.Node(cfg.Parent)
		switch {
		case to == nil:
			return ErrToParentNotFound
		case to.IndexOf(id) >= 0:
			return ErrCloneToSameParent
		case n.Type == graph.TypeSection:
			return ErrCloneSection
		case n.Type == graph.TypeExternalPortal:
			return ErrCloneExternalPortal
		}
		if err := insert(to, id, cfg.Before); err != nil {
			return err
		}
		if graph.IsCyclic(d) {
			return ErrCycle
		}
		return nil
	})
	if err != nil && debug.Mutate() {
		debug.Logf("clone %q: %v\n", id, err)
	}
	return res, ops, err
}
