package main

import (
	"fmt"

	"github.com/signadot/flowgraph/graph"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func nodes(cfg *NodesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Nodes.Parse(cc, args)
	if err != nil {
		cfg.Nodes.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: nodes requires a graph, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	ids, err := filterNodes(g, cfg.Where)
	if err != nil {
		return err
	}
	if cfg.J || cfg.Y {
		if ids == nil {
			ids = []string{}
		}
		return cfg.writeDoc(cc.Out, ids)
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(cc.Out, id); err != nil {
			return err
		}
	}
	return nil
}

// filterNodes returns the ids of g, depth first from the root, for which
// the boolean expression where holds.  An empty expression selects every
// node.
//
// Expressions see the variables id, typeCode, typeName, data, edges,
// parents and clone.
func filterNodes(g *graph.Graph, where string) ([]string, error) {
	var prg *vm.Program
	if where != "" {
		var err error
		prg, err = expr.Compile(where, expr.Env(nodeEnv(g, graph.RootKey)), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	var res []string
	for _, id := range graph.SortIDsDepthFirst(g, g.IDs()) {
		if prg == nil {
			res = append(res, id)
			continue
		}
		out, err := expr.Run(prg, nodeEnv(g, id))
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
		if ok, _ := out.(bool); ok {
			res = append(res, id)
		}
	}
	return res, nil
}

func nodeEnv(r graph.Reader, id string) map[string]any {
	n, _ := r.Get(id)
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	edges := n.Edges
	if edges == nil {
		edges = []string{}
	}
	typeName := ""
	if n.Type != 0 {
		typeName = n.Type.String()
	}
	parents := graph.Parents(r, id)
	if parents == nil {
		parents = []string{}
	}
	return map[string]any{
		"id":       id,
		"typeCode": int(n.Type),
		"typeName": typeName,
		"data":     data,
		"edges":    edges,
		"parents":  parents,
		"clone":    len(parents) > 1,
	}
}
