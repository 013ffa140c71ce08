package mutate

import (
	"slices"

	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/draft"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// Add adds the node described by spec below the configured parent (the
// root by default), appended or in front of the configured sibling, and
// adds its children below it recursively.  Missing ids are generated.
//
// The root entry is created when g has none.  An id repeated within spec
// is linked rather than added twice.
func Add(g *graph.Graph, spec NodeSpec, opts ...Opt) (*graph.Graph, []ot.Op, error) {
	cfg := config(opts)
	if len(cfg.Children) != 0 {
		spec.Children = append(slices.Clone(spec.Children), cfg.Children...)
	}
	if debug.Mutate() {
		debug.Logf("add %q parent %q before %q\n", spec.ID, cfg.Parent, cfg.Before)
	}
	res, ops, err := draft.Produce(g, func(d *draft.Draft) error {
		if !d.Has(graph.RootKey) {
			d.Create(graph.RootKey, graph.Node{})
		}
		a := newAdder(d, cfg.IDs)
		if err := a.add(spec, cfg.Parent, cfg.Before); err != nil {
			return err
		}
		return a.checkCycles()
	})
	if err != nil && debug.Mutate() {
		debug.Logf("add %q: %v\n", spec.ID, err)
	}
	return res, ops, err
}

// adder creates nodes from specs within one draft.
type adder struct {
	d       *draft.Draft
	ids     IDFunc
	created map[string]bool
	linked  bool
}

func newAdder(d *draft.Draft, ids IDFunc) *adder {
	return &adder{d: d, ids: ids, created: map[string]bool{}}
}

func (a *adder) add(spec NodeSpec, parent, before string) error {
	id := spec.ID
	if id == "" {
		id = a.ids()
	}
	pn := a.d.Node(parent)
	if pn == nil {
		return ErrParentNotFound
	}
	if !a.created[id] {
		if a.d.Has(id) {
			return ErrIDExists
		}
		if spec.Type == graph.TypeSection && parent != graph.RootKey {
			return ErrSectionPlacement
		}
	}
	pn.EnsureEdges()
	idx := len(pn.Edges())
	if before != "" {
		idx = pn.IndexOf(before)
		if idx < 0 {
			return ErrBeforeNotFound
		}
	}
	if a.created[id] {
		a.linked = true
		pn.InsertEdge(idx, id)
		return nil
	}
	a.d.Create(id, spec.node())
	pn.InsertEdge(idx, id)
	a.created[id] = true
	for _, c := range spec.Children {
		if err := a.add(c, id, ""); err != nil {
			return err
		}
	}
	return nil
}

// link lists the existing node id below parent.
func (a *adder) link(id, parent string) error {
	pn := a.d.Node(parent)
	if pn == nil {
		return ErrParentNotFound
	}
	a.linked = true
	pn.AppendEdge(id)
	return nil
}

func (a *adder) checkCycles() error {
	if a.linked && graph.IsCyclic(a.d) {
		return ErrCycle
	}
	return nil
}
