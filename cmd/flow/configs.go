package main

import (
	"io"
	"os"

	"github.com/signadot/flowgraph/mutate"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='color summaries and diffs'"`

	J bool `cli:"name=j aliases=json desc='output json (default)'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	Ops       bool   `cli:"name=ops desc='output the json0 ops instead of the graph'"`
	JSONPatch bool   `cli:"name=jsonpatch desc='output the ops as an RFC 6902 patch'"`
	Diff      bool   `cli:"name=diff desc='output a line diff of the graph'"`
	Summary   bool   `cli:"name=summary desc='output a summary of the change'"`
	Seq       string `cli:"name=seq desc='number new ids after this prefix instead of random ids'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) ids() mutate.IDFunc {
	if cfg.Seq != "" {
		return mutate.Sequence(cfg.Seq)
	}
	return mutate.RandomID
}

// useColor reports whether output to w is colored: as asked with -color,
// or else when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type AddConfig struct {
	*MainConfig
	Parent string `cli:"name=parent aliases=p desc='parent id (default _root)'"`
	Before string `cli:"name=before aliases=b desc='sibling to insert before'"`

	Add *cli.Command
}

type RemoveConfig struct {
	*MainConfig

	Remove *cli.Command
}

type MoveConfig struct {
	*MainConfig
	Before string `cli:"name=before aliases=b desc='sibling in the new parent to insert before'"`

	Move *cli.Command
}

type UpdateConfig struct {
	*MainConfig
	RemoveMissing bool   `cli:"name=rm-missing aliases=r desc='delete data keys missing from the update'"`
	Children      string `cli:"name=children aliases=c desc='child specs the node is to list exactly'"`

	Update *cli.Command
}

type CloneConfig struct {
	*MainConfig
	Parent string `cli:"name=parent aliases=p desc='parent id (default _root)'"`
	Before string `cli:"name=before aliases=b desc='sibling to insert before'"`

	Clone *cli.Command
}

type UniqueConfig struct {
	*MainConfig

	Unique *cli.Command
}

type ApplyConfig struct {
	*MainConfig
	Reverse  bool `cli:"name=r desc='apply the inverse of the ops'"`
	ViaPatch bool `cli:"name=jp desc='apply through an RFC 6902 patch'"`

	Apply *cli.Command
}

type DescribeConfig struct {
	*MainConfig

	Describe *cli.Command
}

type NodesConfig struct {
	*MainConfig
	Where string `cli:"name=where aliases=w desc='expression selecting nodes'"`

	Nodes *cli.Command
}
