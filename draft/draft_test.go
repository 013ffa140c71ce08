package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

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

func TestProduce(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		recipe func(d *Draft) error
		graph  string
		ops    string
	}{
		{
			name:   "nothing",
			base:   `{"_root":{"edges":["a"]},"a":{}}`,
			recipe: func(d *Draft) error { d.Node("a"); return nil },
			graph:  `{"_root":{"edges":["a"]},"a":{}}`,
			ops:    `[]`,
		},
		{
			name: "append to existing edges",
			base: `{"_root":{"edges":["a"]},"a":{}}`,
			recipe: func(d *Draft) error {
				d.Node(graph.RootKey).AppendEdge("b")
				d.Create("b", graph.Node{})
				return nil
			},
			graph: `{"_root":{"edges":["a","b"]},"a":{},"b":{}}`,
			ops:   `[{"li":"b","p":["_root","edges",1]},{"p":["b"],"oi":{}}]`,
		},
		{
			name: "first edge of an existing node",
			base: `{"_root":{"edges":["a"]},"a":{"data":{"x":1}}}`,
			recipe: func(d *Draft) error {
				d.Node("a").AppendEdge("b")
				d.Create("b", graph.Node{})
				return nil
			},
			graph: `{"_root":{"edges":["a"]},"a":{"data":{"x":1},"edges":["b"]},"b":{}}`,
			ops:   `[{"oi":["b"],"p":["a","edges"]},{"p":["b"],"oi":{}}]`,
		},
		{
			name: "created parent is emitted whole",
			base: `{}`,
			recipe: func(d *Draft) error {
				root := d.Create(graph.RootKey, graph.Node{})
				root.EnsureEdges()
				d.Create("a", graph.Node{Type: graph.TypeQuestion})
				root.AppendEdge("a")
				return nil
			},
			graph: `{"_root":{"edges":["a"]},"a":{"type":100}}`,
			ops:   `[{"oi":{"edges":["a"]},"p":["_root"]},{"oi":{"type":100},"p":["a"]}]`,
		},
		{
			name: "insert before shifts",
			base: `{"_root":{"edges":["a","b"]},"a":{},"b":{}}`,
			recipe: func(d *Draft) error {
				d.Node(graph.RootKey).InsertEdge(1, "c")
				d.Create("c", graph.Node{})
				return nil
			},
			graph: `{"_root":{"edges":["a","c","b"]},"a":{},"b":{},"c":{}}`,
			ops:   `[{"ld":"b","li":"c","p":["_root","edges",1]},{"li":"b","p":["_root","edges",2]},{"p":["c"],"oi":{}}]`,
		},
		{
			name: "insert before the first",
			base: `{"_root":{"edges":["a"]},"a":{}}`,
			recipe: func(d *Draft) error {
				d.Node(graph.RootKey).InsertEdge(0, "c")
				d.Create("c", graph.Node{})
				return nil
			},
			graph: `{"_root":{"edges":["c","a"]},"a":{},"c":{}}`,
			ops:   `[{"ld":"a","li":"c","p":["_root","edges",0]},{"li":"a","p":["_root","edges",1]},{"p":["c"],"oi":{}}]`,
		},
		{
			name: "remove last edge",
			base: `{"_root":{"edges":["a"]},"a":{"edges":["b"]},"b":{}}`,
			recipe: func(d *Draft) error {
				d.Node("a").DeleteEdges()
				d.Delete("b")
				return nil
			},
			graph: `{"_root":{"edges":["a"]},"a":{}}`,
			ops:   `[{"od":["b"],"p":["a","edges"]},{"od":{},"p":["b"]}]`,
		},
		{
			name: "remove middle edge",
			base: `{"_root":{"edges":["a","b","c"]},"a":{},"b":{},"c":{}}`,
			recipe: func(d *Draft) error {
				d.Node(graph.RootKey).RemoveEdge(1)
				return nil
			},
			graph: `{"_root":{"edges":["a","c"]},"a":{},"b":{},"c":{}}`,
			ops:   `[{"ld":"b","li":"c","p":["_root","edges",1]},{"ld":"c","p":["_root","edges",2]}]`,
		},
		{
			name: "remove two edges",
			base: `{"_root":{"edges":["a","b","c"]},"a":{},"b":{},"c":{}}`,
			recipe: func(d *Draft) error {
				root := d.Node(graph.RootKey)
				root.RemoveEdge(0)
				root.RemoveEdge(0)
				return nil
			},
			graph: `{"_root":{"edges":["c"]},"a":{},"b":{},"c":{}}`,
			ops:   `[{"ld":"a","li":"c","p":["_root","edges",0]},{"ld":"c","p":["_root","edges",2]},{"ld":"b","p":["_root","edges",1]}]`,
		},
		{
			name: "append two edges",
			base: `{"_root":{"edges":["a"]},"a":{},"b":{},"c":{}}`,
			recipe: func(d *Draft) error {
				root := d.Node(graph.RootKey)
				root.AppendEdge("b")
				root.AppendEdge("c")
				return nil
			},
			graph: `{"_root":{"edges":["a","b","c"]},"a":{},"b":{},"c":{}}`,
			ops:   `[{"li":"b","p":["_root","edges",1]},{"li":"c","p":["_root","edges",2]}]`,
		},
		{
			name: "data keys in assignment order",
			base: `{"a":{"data":{"x":1,"y":"old","z":true}}}`,
			recipe: func(d *Draft) error {
				a := d.Node("a")
				a.DeleteDataKey("x")
				a.SetDataKey("y", "new")
				a.SetDataKey("w", "added")
				a.SetDataKey("z", true)
				a.SetDataKey("v", "gone")
				a.DeleteDataKey("v")
				return nil
			},
			graph: `{"a":{"data":{"y":"new","z":true,"w":"added"}}}`,
			ops:   `[{"od":1,"p":["a","data","x"]},{"od":"old","oi":"new","p":["a","data","y"]},{"oi":"added","p":["a","data","w"]}]`,
		},
		{
			name: "nested data before edges before own keys",
			base: `{"a":{"data":{"x":1},"edges":["b"]},"b":{},"c":{}}`,
			recipe: func(d *Draft) error {
				a := d.Node("a")
				a.SetType(graph.TypeNotice)
				a.AppendEdge("c")
				a.SetDataKey("x", 2.0)
				return nil
			},
			graph: `{"a":{"type":8,"data":{"x":2},"edges":["b","c"]},"b":{},"c":{}}`,
			ops:   `[{"od":1,"oi":2,"p":["a","data","x"]},{"li":"c","p":["a","edges",1]},{"oi":8,"p":["a","type"]}]`,
		},
		{
			name: "replace whole data",
			base: `{"a":{"data":{"x":1}}}`,
			recipe: func(d *Draft) error {
				a := d.Node("a")
				a.SetDataKey("x", 3.0)
				a.SetData(map[string]any{"y": "z"})
				return nil
			},
			graph: `{"a":{"data":{"y":"z"}}}`,
			ops:   `[{"od":{"x":1},"oi":{"y":"z"},"p":["a","data"]}]`,
		},
		{
			name: "data added then removed",
			base: `{"a":{}}`,
			recipe: func(d *Draft) error {
				a := d.Node("a")
				a.SetData(map[string]any{})
				a.DeleteData()
				return nil
			},
			graph: `{"a":{}}`,
			ops:   `[]`,
		},
		{
			name: "created then deleted",
			base: `{"a":{}}`,
			recipe: func(d *Draft) error {
				d.Create("b", graph.Node{})
				d.Delete("b")
				d.Delete("b")
				return nil
			},
			graph: `{"a":{}}`,
			ops:   `[]`,
		},
		{
			name: "deleted then created",
			base: `{"a":{"type":200},"b":{}}`,
			recipe: func(d *Draft) error {
				d.Delete("a")
				d.Create("a", graph.Node{Type: graph.TypeQuestion})
				return nil
			},
			graph: `{"b":{},"a":{"type":100}}`,
			ops:   `[{"od":{"type":200},"oi":{"type":100},"p":["a"]}]`,
		},
		{
			name: "changes of a deleted node vanish",
			base: `{"_root":{"edges":["a","b"]},"a":{"edges":["b"]},"b":{}}`,
			recipe: func(d *Draft) error {
				d.Node(graph.RootKey).RemoveEdge(0)
				d.Node("a").DeleteEdges()
				d.Delete("a")
				return nil
			},
			graph: `{"_root":{"edges":["b"]},"b":{}}`,
			ops:   `[{"ld":"a","li":"b","p":["_root","edges",0]},{"ld":"b","p":["_root","edges",1]},{"od":{"edges":["b"]},"p":["a"]}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustParse(t, tt.base)
			before := toAny(t, base)
			got, ops, err := Produce(base, tt.recipe)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(parseAny(t, tt.graph), toAny(t, got)); diff != "" {
				t.Errorf("graph (-want +got):\n%s", diff)
			}
			wantGraph := mustParse(t, tt.graph)
			if diff := cmp.Diff(wantGraph.IDs(), got.IDs()); diff != "" {
				t.Errorf("key order (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(parseAny(t, tt.ops), toAny(t, nonNil(ops))); diff != "" {
				t.Errorf("ops (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, toAny(t, base)); diff != "" {
				t.Errorf("base modified (-want +got):\n%s", diff)
			}
			fwd, err := ot.ApplyGraph(base, ops)
			if err != nil {
				t.Fatalf("applying ops: %v", err)
			}
			if diff := cmp.Diff(toAny(t, got), toAny(t, fwd)); diff != "" {
				t.Errorf("replay (-want +got):\n%s", diff)
			}
			back, err := ot.ApplyGraph(got, ot.Invert(ops))
			if err != nil {
				t.Fatalf("applying inverse: %v", err)
			}
			if diff := cmp.Diff(before, toAny(t, back)); diff != "" {
				t.Errorf("inverse (-want +got):\n%s", diff)
			}
		})
	}
}

func nonNil(ops []ot.Op) []ot.Op {
	if ops == nil {
		return []ot.Op{}
	}
	return ops
}

func TestProduceError(t *testing.T) {
	base := mustParse(t, `{"a":{}}`)
	errBoom := errors.New("boom")
	got, ops, err := Produce(base, func(d *Draft) error {
		d.Create("b", graph.Node{})
		return fmt.Errorf("recipe: %w", errBoom)
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("got %v", err)
	}
	if got != nil || ops != nil {
		t.Errorf("expected no result on error")
	}
	if base.Has("b") {
		t.Errorf("base modified")
	}
}

func TestStructuralSharing(t *testing.T) {
	base := mustParse(t, `{"_root":{"edges":["a"]},"a":{"data":{"x":1}},"b":{"edges":["a"]}}`)
	got, _, err := Produce(base, func(d *Draft) error {
		d.Node(graph.RootKey).AppendEdge("b")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	a0, _ := base.Get("a")
	a1, _ := got.Get("a")
	if fmt.Sprintf("%p", a0.Data) != fmt.Sprintf("%p", a1.Data) {
		t.Errorf("unchanged node data was copied")
	}
	r0, _ := base.Get(graph.RootKey)
	if len(r0.Edges) != 1 {
		t.Errorf("base root edges modified: %v", r0.Edges)
	}
}

func TestDraftReader(t *testing.T) {
	d := New(mustParse(t, `{"_root":{"edges":["a"]},"a":{},"b":{"edges":["a"]}}`))
	if got := graph.NumberOfEdgesTo(d, "a"); got != 2 {
		t.Errorf("edges to a: %d", got)
	}
	d.Node("b").DeleteEdges()
	d.Delete("b")
	d.Create("c", graph.Node{Edges: []string{"a"}})
	if diff := cmp.Diff([]string{"_root", "a", "c"}, d.IDs()); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if d.Has("b") || d.Node("b") != nil {
		t.Errorf("b still present")
	}
	if _, ok := d.Get("c"); !ok {
		t.Errorf("c missing")
	}
	if got := graph.NumberOfEdgesTo(d, "a"); got != 2 {
		t.Errorf("edges to a: %d", got)
	}
}

func TestToOps(t *testing.T) {
	fwd := []Patch{
		{Op: Replace, Path: ot.Path{"a", "edges", "length"}, Value: 1},
		{Op: Add, Path: ot.Path{"a", "data"}, Value: map[string]any{"k": "v"}},
		{Op: Remove, Path: ot.Path{"b"}},
	}
	inv := []Patch{
		{Op: Add, Path: ot.Path{"a", "edges", 1}, Value: "x"},
		{Op: Remove, Path: ot.Path{"a", "data"}},
		{Op: Add, Path: ot.Path{"b"}, Value: graph.Node{}},
	}
	want := []ot.Op{
		{P: ot.Path{"a", "edges", 1}, LD: "x"},
		{P: ot.Path{"a", "data"}, OI: map[string]any{"k": "v"}},
		{P: ot.Path{"b"}, OD: graph.Node{}},
	}
	if diff := cmp.Diff(want, ToOps(fwd, inv)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
