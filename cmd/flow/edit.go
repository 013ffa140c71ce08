package main

import (
	"fmt"

	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/mutate"
	"github.com/signadot/flowgraph/ot"

	"github.com/scott-cotton/cli"
)

func add(cfg *AddConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Add.Parse(cc, args)
	if err != nil {
		cfg.Add.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: add requires a graph and a spec, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	var spec mutate.NodeSpec
	if err := decodeArg(cc, args[1], &spec); err != nil {
		return err
	}
	res, ops, err := mutate.Add(g, spec,
		mutate.Parent(cfg.Parent), mutate.Before(cfg.Before), mutate.IDs(cfg.ids()))
	if err != nil {
		return err
	}
	return cfg.emit(cc, g, res, ops)
}

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remove.Parse(cc, args)
	if err != nil {
		cfg.Remove.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("%w: rm requires a graph, an id and an optional parent, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	parent := graph.RootKey
	if len(args) == 3 {
		parent = args[2]
	}
	res, ops, err := mutate.Remove(g, args[1], parent)
	if err != nil {
		return err
	}
	return cfg.emit(cc, g, res, ops)
}

func move(cfg *MoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Move.Parse(cc, args)
	if err != nil {
		cfg.Move.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 && len(args) != 4 {
		return fmt.Errorf("%w: mv requires a graph, an id, a parent and an optional new parent, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	toParent := ""
	if len(args) == 4 {
		toParent = args[3]
	}
	res, ops, err := mutate.Move(g, args[1], args[2], toParent, mutate.Before(cfg.Before))
	if err != nil {
		return err
	}
	return cfg.emit(cc, g, res, ops)
}

func update(cfg *UpdateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Update.Parse(cc, args)
	if err != nil {
		cfg.Update.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: update requires a graph, an id and data, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	var data map[string]any
	if err := decodeArg(cc, args[2], &data); err != nil {
		return err
	}
	opts := []mutate.Opt{mutate.IDs(cfg.ids())}
	if cfg.RemoveMissing {
		opts = append(opts, mutate.RemoveMissing())
	}
	if cfg.Children != "" {
		specs, err := getSpecs(cc, cfg.Children)
		if err != nil {
			return err
		}
		opts = append(opts, mutate.Children(specs...))
	}
	res, ops, err := mutate.Update(g, args[1], data, opts...)
	if err != nil {
		return err
	}
	return cfg.emit(cc, g, res, ops)
}

func clone(cfg *CloneConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Clone.Parse(cc, args)
	if err != nil {
		cfg.Clone.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: clone requires a graph and an id, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	res, ops, err := mutate.Clone(g, args[1], mutate.Parent(cfg.Parent), mutate.Before(cfg.Before))
	if err != nil {
		return err
	}
	return cfg.emit(cc, g, res, ops)
}

func unique(cfg *UniqueConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unique.Parse(cc, args)
	if err != nil {
		cfg.Unique.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: unique requires a graph, an id and a parent, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	res, ops, err := mutate.MakeUnique(g, args[1], args[2], mutate.IDs(cfg.ids()))
	if err != nil {
		return err
	}
	return cfg.emit(cc, g, res, ops)
}

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply requires a graph and ops, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	ops, err := getOps(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		ops = ot.Invert(ops)
	}
	res, err := applyOps(g, ops, cfg.ViaPatch)
	if err != nil {
		return err
	}
	return cfg.emit(cc, g, res, ops)
}

// applyOps applies ops to g directly or, with viaPatch, as an RFC 6902
// patch of the encoded graph.
func applyOps(g *graph.Graph, ops []ot.Op, viaPatch bool) (*graph.Graph, error) {
	if !viaPatch {
		return ot.ApplyGraph(g, ops)
	}
	doc, err := g.MarshalJSON()
	if err != nil {
		return nil, err
	}
	d, err := ot.ApplyJSONPatch(doc, ops)
	if err != nil {
		return nil, err
	}
	return graph.Parse(d)
}

func describe(cfg *DescribeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Describe.Parse(cc, args)
	if err != nil {
		cfg.Describe.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: describe requires a graph and ops, got %v", cli.ErrUsage, args)
	}
	g, err := getGraph(cc, args[0])
	if err != nil {
		return err
	}
	ops, err := getOps(cc, args[1])
	if err != nil {
		return err
	}
	// the ops name nodes they create, found after applying them.
	res, err := ot.ApplyGraph(g, ops)
	if err != nil {
		return err
	}
	return cfg.writeSummary(cc.Out, overlay{res, g}, ops)
}
