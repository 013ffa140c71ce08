package mutate

import (
	"maps"
	"slices"

	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/draft"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// Update merges data into the data of id.  Keys whose cleaned value is
// empty are deleted, keys with an equal value are left alone and the
// others set.  A node left with empty data loses its data key.
//
// With RemoveMissing, keys of the node absent from data are deleted too.
// With Children, the edges of id are made to list exactly the given
// children: children not in the graph are added, children no longer
// listed are removed, and the data of each child is updated by the same
// rules.
func Update(g *graph.Graph, id string, data map[string]any, opts ...Opt) (*graph.Graph, []ot.Op, error) {
	cfg := config(opts)
	if debug.Mutate() {
		debug.Logf("update %q with %v\n", id, data)
	}
	res, ops, err := draft.Produce(g, func(d *draft.Draft) error {
		u := &updater{adder: newAdder(d, cfg.IDs), removeMissing: cfg.RemoveMissing}
		if err := u.update(id, data, cfg.Children); err != nil {
			return err
		}
		return u.checkCycles()
	})
	if err != nil && debug.Mutate() {
		debug.Logf("update %q: %v\n", id, err)
	}
	return res, ops, err
}

type updater struct {
	*adder
	removeMissing bool
}

func (u *updater) update(id string, data map[string]any, children []NodeSpec) error {
	nd := u.d.Node(id)
	if nd == nil {
		return ErrIDNotFound
	}
	if children != nil {
		if err := u.syncChildren(nd, children); err != nil {
			return err
		}
	}
	if u.removeMissing {
		for _, k := range sortedKeys(nd.Data()) {
			if !isSomething(sanitize(data[k])) {
				nd.DeleteDataKey(k)
			}
		}
	}
	if nd.Data() == nil {
		if clean := sanitizeMap(data); len(clean) != 0 {
			nd.SetData(clean)
		}
		return nil
	}
	for _, k := range sortedKeys(data) {
		v := sanitize(data[k])
		cur, has := nd.Data()[k]
		switch {
		case !isSomething(v) && has:
			nd.DeleteDataKey(k)
		case isSomething(v) && !(has && graph.Equal(v, cur)):
			nd.SetDataKey(k, v)
		}
	}
	if len(nd.Data()) == 0 {
		nd.DeleteData()
	}
	return nil
}

func (u *updater) syncChildren(nd *draft.NodeDraft, children []NodeSpec) error {
	specs := slices.Clone(children)
	ids := make([]string, len(specs))
	for i := range specs {
		if specs[i].ID == "" {
			specs[i].ID = u.ids()
		}
		ids[i] = specs[i].ID
	}
	cur := slices.Clone(nd.Edges())
	if !slices.Equal(ids, cur) {
		for _, s := range specs {
			if slices.Contains(cur, s.ID) {
				continue
			}
			var err error
			if u.d.Has(s.ID) {
				err = u.link(s.ID, nd.ID())
			} else {
				err = u.add(s, nd.ID(), "")
			}
			if err != nil {
				return err
			}
		}
		for _, c := range cur {
			if slices.Contains(ids, c) {
				continue
			}
			nd.RemoveEdge(nd.IndexOf(c))
			if err := prune(u.d, c); err != nil {
				return err
			}
		}
		if len(ids) == 0 {
			nd.DeleteEdges()
		} else {
			nd.SetEdges(ids)
		}
	}
	for _, s := range specs {
		if u.created[s.ID] {
			continue
		}
		if err := u.update(s.ID, s.Data, nil); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
