package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "flow").
		WithSynopsis("flow [opts] command [opts] graph ...").
		WithDescription("flow edits flow graph documents, reporting each edit as json0 ops.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return flowMain(cfg, cc, args)
		}).
		WithSubs(
			AddCommand(cfg),
			RemoveCommand(cfg),
			MoveCommand(cfg),
			UpdateCommand(cfg),
			CloneCommand(cfg),
			UniqueCommand(cfg),
			ApplyCommand(cfg),
			DescribeCommand(cfg),
			NodesCommand(cfg))
}

func AddCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AddConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Add, "add").
		WithAliases("a").
		WithSynopsis("add [-parent id] [-before id] graph spec").
		WithDescription("add a node, and the children in its spec, to a graph").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return add(cfg, cc, args)
		})
}

func RemoveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RemoveConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Remove, "rm").
		WithAliases("remove").
		WithSynopsis("rm graph id [parent]").
		WithDescription("remove a node from its parent, the root by default").
		WithRun(func(cc *cli.Context, args []string) error {
			return remove(cfg, cc, args)
		})
}

func MoveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MoveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Move, "mv").
		WithAliases("move").
		WithSynopsis("mv [-before id] graph id parent [toParent]").
		WithDescription("move a node from one parent to another or within its parent").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return move(cfg, cc, args)
		})
}

func UpdateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UpdateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Update, "update").
		WithAliases("u", "up").
		WithSynopsis("update [-rm-missing] [-children specs] graph id data").
		WithDescription("merge data into a node and optionally set its children").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return update(cfg, cc, args)
		})
}

func CloneCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CloneConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Clone, "clone").
		WithAliases("c").
		WithSynopsis("clone [-parent id] [-before id] graph id").
		WithDescription("list an existing node under another parent").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return clone(cfg, cc, args)
		})
}

func UniqueCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UniqueConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Unique, "unique").
		WithAliases("uniq").
		WithSynopsis("unique graph id parent").
		WithDescription("replace a shared node under parent with a deep copy").
		WithRun(func(cc *cli.Context, args []string) error {
			return unique(cfg, cc, args)
		})
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("ap").
		WithSynopsis("apply [-r] [-jp] graph ops").
		WithDescription("apply json0 ops to a graph").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func DescribeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DescribeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Describe, "describe").
		WithAliases("d", "desc").
		WithSynopsis("describe graph ops").
		WithDescription("summarize json0 ops against the graph they apply to").
		WithRun(func(cc *cli.Context, args []string) error {
			return describe(cfg, cc, args)
		})
}

func NodesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NodesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Nodes, "nodes").
		WithAliases("n", "ls").
		WithSynopsis("nodes [-where expr] graph").
		WithDescription("list node ids depth first, optionally those matching an expression").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return nodes(cfg, cc, args)
		})
}
