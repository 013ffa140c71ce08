// Package summary describes json0 ops on a flow graph in words, for
// change logs and review.
package summary

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// allowProps are the data keys short enough to show with their values.
var allowProps = []string{"title", "text", "fn", "val"}

// labelKeys are tried in order for the label of a node.
var labelKeys = []string{"title", "text", "content", "fn", "val", "flowId"}

// Summarize returns one line for each op of ops worth reporting.  r is
// the graph the ops apply to; it names the nodes the ops touch.
func Summarize(r graph.Reader, ops []ot.Op) []string {
	var res []string
	for _, o := range ops {
		if line := describe(r, o); line != "" {
			res = append(res, line)
		}
	}
	return res
}

func describe(r graph.Reader, o ot.Op) string {
	id, _ := o.P.Key(0)
	n, _ := r.Get(id)
	switch {
	case o.OI != nil && o.OD != nil:
		return replaced(n, o)
	case o.OI != nil:
		return changed(r, "Added", "to", n, o.P, o.OI)
	case o.OD != nil:
		return changed(r, "Removed", "from", n, o.P, o.OD)
	case o.LI != nil && o.LD != nil:
		if !hasKey(o.P, "edges") {
			return ""
		}
		if hasKey(o.P, graph.RootKey) {
			return "Re-ordered the root graph"
		}
		return "Moved node"
	}
	return ""
}

func replaced(n graph.Node, o ot.Op) string {
	from, fok := typedNode(o.P, o.OD)
	to, tok := typedNode(o.P, o.OI)
	switch {
	case fok && tok:
		return fmt.Sprintf("Replaced %s with %s", labeled(from), labeled(to))
	case hasKey(o.P, "data"):
		prop := dataProp(o.P)
		if slices.Contains(allowProps, prop) {
			return fmt.Sprintf("Updated %s %s from \"%s\" to \"%s\"", name(n, "node"), prop, format(o.OD), format(o.OI))
		}
		return fmt.Sprintf("Updated %s %s", name(n, "node"), prop)
	case hasKey(o.P, "edges"):
		return fmt.Sprintf("Updated order of %s edges", name(n, "graph"))
	}
	return ""
}

// changed describes an insert or a delete, according to verb and the
// preposition used for edges.
func changed(r graph.Reader, verb, prep string, n graph.Node, p ot.Path, v any) string {
	if tn, ok := typedNode(p, v); ok {
		return verb + " " + labeled(tn)
	}
	switch {
	case hasKey(p, "data"):
		prop := dataProp(p)
		if slices.Contains(allowProps, prop) {
			return fmt.Sprintf("%s %s %s \"%s\"", verb, name(n, "node"), prop, format(v))
		}
		return fmt.Sprintf("%s %s %s", verb, name(n, "node"), prop)
	case hasKey(p, "edges"):
		var child graph.Node
		if id, ok := firstEdge(v); ok {
			child, _ = r.Get(id)
		}
		return fmt.Sprintf("%s %s %s branch", verb, name(child, "node"), prep)
	}
	return ""
}

// typedNode returns the node inserted or deleted by a whole node op, if
// it carries a type.
func typedNode(p ot.Path, v any) (graph.Node, bool) {
	if len(p) != 1 {
		return graph.Node{}, false
	}
	n, err := graph.NodeFrom(v)
	if err != nil {
		return graph.Node{}, false
	}
	return n, n.Type != 0
}

func labeled(n graph.Node) string {
	for _, k := range labelKeys {
		v, ok := n.Data[k]
		if !ok || v == nil || v == "" || v == false {
			continue
		}
		return fmt.Sprintf("%s \"%s\"", n.Type, format(v))
	}
	return n.Type.String()
}

func name(n graph.Node, dflt string) string {
	if n.Type == 0 {
		return dflt
	}
	return n.Type.String()
}

func dataProp(p ot.Path) string {
	if k, ok := p.Key(2); ok {
		return k
	}
	return "data"
}

func firstEdge(v any) (string, bool) {
	switch x := v.(type) {
	case []string:
		if len(x) != 0 {
			return x[0], true
		}
	case []any:
		if len(x) != 0 {
			s, ok := x[0].(string)
			return s, ok
		}
	}
	return "", false
}

func hasKey(p ot.Path, k string) bool {
	for i := range p {
		if s, ok := p.Key(i); ok && s == k {
			return true
		}
	}
	return false
}

// format renders a value the way it reads in a sentence.
func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64, int, bool:
		return fmt.Sprint(x)
	}
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(d)
}
