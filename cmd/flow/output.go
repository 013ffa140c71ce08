package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
	"github.com/signadot/flowgraph/summary"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type colors struct {
	add, del, info func(string, ...any) string
}

func plainColors() *colors {
	return &colors{add: fmt.Sprintf, del: fmt.Sprintf, info: fmt.Sprintf}
}

func newColors() *colors {
	mk := func(c *color.Color) func(string, ...any) string {
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &colors{
		add:  mk(color.RGB(8, 196, 16)),
		del:  mk(color.RGB(196, 32, 32)),
		info: mk(color.RGB(128, 168, 196)),
	}
}

func (cfg *MainConfig) colors(w io.Writer) *colors {
	if cfg.useColor(w) {
		return newColors()
	}
	return plainColors()
}

// emit writes the outcome of an edit taking before to after by ops, in
// the form selected by the main options.
func (cfg *MainConfig) emit(cc *cli.Context, before, after *graph.Graph, ops []ot.Op) error {
	switch {
	case cfg.Ops:
		if ops == nil {
			ops = []ot.Op{}
		}
		return cfg.writeDoc(cc.Out, ops)
	case cfg.JSONPatch:
		return cfg.writeDoc(cc.Out, ot.ToJSONPatch(ops))
	case cfg.Summary:
		return cfg.writeSummary(cc.Out, overlay{after, before}, ops)
	case cfg.Diff:
		return cfg.writeDiff(cc.Out, before, after)
	}
	return cfg.writeDoc(cc.Out, after)
}

func (cfg *MainConfig) writeSummary(w io.Writer, r graph.Reader, ops []ot.Op) error {
	c := cfg.colors(w)
	for _, line := range summary.Summarize(r, ops) {
		f := c.info
		switch {
		case strings.HasPrefix(line, "Added"):
			f = c.add
		case strings.HasPrefix(line, "Removed"):
			f = c.del
		}
		if _, err := fmt.Fprintln(w, f("%s", line)); err != nil {
			return err
		}
	}
	return nil
}

// writeDiff writes a line diff of the encoded graphs.
func (cfg *MainConfig) writeDiff(w io.Writer, before, after *graph.Graph) error {
	from, err := cfg.marshal(before)
	if err != nil {
		return err
	}
	to, err := cfg.marshal(after)
	if err != nil {
		return err
	}
	c := cfg.colors(w)
	for _, line := range diffLines(string(from), string(to)) {
		var s string
		switch line.Type {
		case diffpatch.DiffInsert:
			s = c.add("+%s", line.Text)
		case diffpatch.DiffDelete:
			s = c.del("-%s", line.Text)
		default:
			s = " " + line.Text
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// diffLines returns one diff per line of from and to.
func diffLines(from, to string) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []diffpatch.Diff
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			res = append(res, diffpatch.Diff{Type: d.Type, Text: l})
		}
	}
	return res
}

// overlay reads nodes from the first graph having them, so that nodes
// deleted by an edit can still be named.
type overlay []*graph.Graph

func (o overlay) IDs() []string {
	var res []string
	for _, g := range o {
		for _, id := range g.IDs() {
			if !slices.Contains(res, id) {
				res = append(res, id)
			}
		}
	}
	return res
}

func (o overlay) Get(id string) (graph.Node, bool) {
	for _, g := range o {
		if n, ok := g.Get(id); ok {
			return n, true
		}
	}
	return graph.Node{}, false
}
