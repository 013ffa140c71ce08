package mutate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

// mutation runs one operation against g.
type mutation func(g *graph.Graph) (*graph.Graph, []ot.Op, error)

type opTest struct {
	name string
	// base is the graph document, or empty for no graph.
	base  string
	run   mutation
	graph string
	ops   string
	err   error
}

func runOpTests(t *testing.T, tests []opTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkOp(t, tt)
		})
	}
}

func checkOp(t *testing.T, tt opTest) {
	t.Helper()
	var base *graph.Graph
	if tt.base != "" {
		base = mustParse(t, tt.base)
	}
	before := base.Value()
	got, ops, err := tt.run(base)
	if tt.err != nil {
		if !errors.Is(err, tt.err) {
			t.Fatalf("expected %v, got %v", tt.err, err)
		}
		if got != nil || ops != nil {
			t.Errorf("result returned with error")
		}
		if diff := cmp.Diff(before, base.Value()); diff != "" {
			t.Errorf("base modified (-want +got):\n%s", diff)
		}
		return
	}
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(parseAny(t, tt.graph), toAny(t, got)); diff != "" {
		t.Errorf("graph (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(parseAny(t, tt.ops), toAny(t, nonNil(ops))); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, base.Value()); diff != "" {
		t.Errorf("base modified (-want +got):\n%s", diff)
	}
	checkReplay(t, base, got, ops)
	checkIntegrity(t, got)
}

// checkReplay verifies that ops take base to got and that their inverse
// takes got back to base.
func checkReplay(t *testing.T, base, got *graph.Graph, ops []ot.Op) {
	t.Helper()
	fwd, err := ot.ApplyGraph(base, ops)
	if err != nil {
		t.Fatalf("applying ops: %v", err)
	}
	if diff := cmp.Diff(got.Value(), fwd.Value()); diff != "" {
		t.Errorf("replay (-want +got):\n%s", diff)
	}
	back, err := ot.ApplyGraph(got, ot.Invert(ops))
	if err != nil {
		t.Fatalf("applying inverse: %v", err)
	}
	if diff := cmp.Diff(base.Value(), back.Value()); diff != "" {
		t.Errorf("inverse (-want +got):\n%s", diff)
	}
}

// checkIntegrity verifies that every edge leads to a node of g.
func checkIntegrity(t *testing.T, g *graph.Graph) {
	t.Helper()
	for _, e := range g.Entries() {
		for _, c := range e.Node.Edges {
			if !g.Has(c) {
				t.Errorf("%s lists missing node %s", e.ID, c)
			}
		}
	}
}

func mustParse(t *testing.T, doc string) *graph.Graph {
	t.Helper()
	g, err := graph.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func toAny(t *testing.T, v any) any {
	t.Helper()
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func parseAny(t *testing.T, s string) any {
	t.Helper()
	var res any
	if err := json.Unmarshal([]byte(s), &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func parseData(t *testing.T, s string) map[string]any {
	t.Helper()
	var res map[string]any
	if err := json.Unmarshal([]byte(s), &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func nonNil(ops []ot.Op) []ot.Op {
	if ops == nil {
		return []ot.Op{}
	}
	return ops
}
