package ot

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/signadot/flowgraph/debug"
	"github.com/signadot/flowgraph/graph"
)

// Apply applies ops in order to a copy of doc, a json compatible value,
// and returns the result.  Deleted values are checked against the
// document.
func Apply(doc any, ops []Op) (any, error) {
	res, err := generic(doc)
	if err != nil {
		return nil, err
	}
	for i, o := range ops {
		if err := o.check(); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		o, err = o.generic()
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		if debug.Apply() {
			debug.Logf("apply %s\n", o)
		}
		res, err = applyAt(res, o.P, o)
		if err != nil {
			return nil, fmt.Errorf("op %d at %s: %w", i, o.P, err)
		}
	}
	return res, nil
}

// ApplyGraph applies ops to g and returns the resulting graph.  Key order
// is kept: inserted ids are appended and deleted ids dropped.
func ApplyGraph(g *graph.Graph, ops []Op) (*graph.Graph, error) {
	ids := g.IDs()
	nodes := make(map[string]any, len(ids))
	for _, e := range g.Entries() {
		nodes[e.ID] = e.Node.Value()
	}
	for i, o := range ops {
		if err := o.check(); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		o, err := o.generic()
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		if debug.Apply() {
			debug.Logf("apply %s\n", o)
		}
		id, _ := o.P.Key(0)
		if len(o.P) == 1 {
			if o.OD != nil {
				cur, ok := nodes[id]
				if !ok {
					return nil, fmt.Errorf("op %d at %s: %w", i, o.P, ErrNotFound)
				}
				if !graph.Equal(cur, o.OD) {
					return nil, fmt.Errorf("op %d at %s: %w", i, o.P, ErrMismatch)
				}
				delete(nodes, id)
				ids = slices.DeleteFunc(ids, func(x string) bool { return x == id })
			}
			if o.OI != nil {
				if _, ok := nodes[id]; !ok {
					ids = append(ids, id)
				}
				nodes[id] = o.OI
			}
			continue
		}
		cur, ok := nodes[id]
		if !ok {
			return nil, fmt.Errorf("op %d at %s: %w", i, o.P, ErrNotFound)
		}
		next, err := applyAt(cur, o.P[1:], o)
		if err != nil {
			return nil, fmt.Errorf("op %d at %s: %w", i, o.P, err)
		}
		nodes[id] = next
	}
	es := make([]graph.Entry, len(ids))
	for i, id := range ids {
		n, err := graph.NodeFrom(nodes[id])
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", id, err)
		}
		es[i] = graph.Entry{ID: id, Node: n}
	}
	return graph.FromEntries(es...), nil
}

func applyAt(v any, p Path, o Op) (any, error) {
	if len(p) == 1 {
		return applyLast(v, p[0], o)
	}
	switch x := v.(type) {
	case map[string]any:
		k, ok := p[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: index %v into object", ErrBadPath, p[0])
		}
		child, ok := x[k]
		if !ok {
			return nil, ErrNotFound
		}
		next, err := applyAt(child, p[1:], o)
		if err != nil {
			return nil, err
		}
		x[k] = next
		return x, nil
	case []any:
		i, ok := p[0].(int)
		if !ok || i >= len(x) {
			return nil, ErrNotFound
		}
		next, err := applyAt(x[i], p[1:], o)
		if err != nil {
			return nil, err
		}
		x[i] = next
		return x, nil
	default:
		return nil, ErrNotFound
	}
}

func applyLast(v any, elt any, o Op) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		k, ok := elt.(string)
		if !ok || o.IsList() {
			return nil, fmt.Errorf("%w: list op on object", ErrBadOp)
		}
		if o.OD != nil {
			cur, ok := x[k]
			if !ok {
				return nil, ErrNotFound
			}
			if !graph.Equal(cur, o.OD) {
				return nil, ErrMismatch
			}
			delete(x, k)
		}
		if o.OI != nil {
			x[k] = o.OI
		}
		return x, nil
	case []any:
		i, ok := elt.(int)
		if !ok || o.IsObject() {
			return nil, fmt.Errorf("%w: object op on list", ErrBadOp)
		}
		if o.LD != nil {
			if i >= len(x) {
				return nil, ErrNotFound
			}
			if !graph.Equal(x[i], o.LD) {
				return nil, ErrMismatch
			}
			x = slices.Delete(x, i, i+1)
		}
		if o.LI != nil {
			if i > len(x) {
				return nil, ErrNotFound
			}
			x = slices.Insert(x, i, o.LI)
		}
		return x, nil
	default:
		return nil, ErrNotFound
	}
}

func (o Op) generic() (Op, error) {
	var err error
	conv := func(v any) any {
		if v == nil || err != nil {
			return v
		}
		var res any
		res, err = generic(v)
		return res
	}
	res := Op{P: o.P, OI: conv(o.OI), OD: conv(o.OD), LI: conv(o.LI), LD: conv(o.LD)}
	return res, err
}

// generic returns a deep copy of v made of maps, slices and scalars.
func generic(v any) (any, error) {
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		return nil, err
	}
	return res, nil
}
