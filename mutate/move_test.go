package mutate

import (
	"testing"

	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/ot"
)

func move(id, parent, toParent string, opts ...Opt) mutation {
	return func(g *graph.Graph) (*graph.Graph, []ot.Op, error) {
		return Move(g, id, parent, toParent, opts...)
	}
}

func TestMove(t *testing.T) {
	runOpTests(t, []opTest{
		{
			name:  "within same parent",
			base:  `{"_root":{"edges":["a","b"]},"a":{},"b":{}}`,
			run:   move("b", graph.RootKey, "", Before("a")),
			graph: `{"_root":{"edges":["b","a"]},"a":{},"b":{}}`,
			ops: `[
				{"p":["_root","edges",0],"ld":"a","li":"b"},
				{"p":["_root","edges",1],"ld":"b","li":"a"}
			]`,
		},
		{
			name:  "to the end of same parent",
			base:  `{"_root":{"edges":["a","b","c"]},"a":{},"b":{},"c":{}}`,
			run:   move("a", graph.RootKey, graph.RootKey),
			graph: `{"_root":{"edges":["b","c","a"]},"a":{},"b":{},"c":{}}`,
			ops: `[
				{"p":["_root","edges",0],"ld":"a","li":"b"},
				{"p":["_root","edges",1],"ld":"b","li":"c"},
				{"p":["_root","edges",2],"ld":"c","li":"a"}
			]`,
		},
		{
			name: "sections within same root parent",
			base: `{"_root":{"edges":["a","sectionNodeId"]},"a":{"type":100},"sectionNodeId":{"type":360}}`,
			run:  move("sectionNodeId", graph.RootKey, "", Before("a")),
			graph: `{
				"_root":{"edges":["sectionNodeId","a"]},
				"a":{"type":100},
				"sectionNodeId":{"type":360}
			}`,
			ops: `[
				{"ld":"a","li":"sectionNodeId","p":["_root","edges",0]},
				{"ld":"sectionNodeId","li":"a","p":["_root","edges",1]}
			]`,
		},
		{
			name: "sections within same root folder",
			base: `{
				"_root":{"edges":["internalPortalId"]},
				"internalPortalId":{"type":300,"edges":["a","sectionNodeId"]},
				"sectionNodeId":{"type":360},
				"a":{}
			}`,
			run: move("sectionNodeId", "internalPortalId", "", Before("a")),
			graph: `{
				"_root":{"edges":["internalPortalId"]},
				"internalPortalId":{"type":300,"edges":["sectionNodeId","a"]},
				"sectionNodeId":{"type":360},
				"a":{}
			}`,
			ops: `[
				{"ld":"a","li":"sectionNodeId","p":["internalPortalId","edges",0]},
				{"ld":"sectionNodeId","li":"a","p":["internalPortalId","edges",1]}
			]`,
		},
		{
			name:  "to another parent",
			base:  `{"_root":{"edges":["a","b"]},"a":{},"b":{}}`,
			run:   move("b", graph.RootKey, "a"),
			graph: `{"_root":{"edges":["a"]},"a":{"edges":["b"]},"b":{}}`,
			ops: `[
				{"p":["_root","edges",1],"ld":"b"},
				{"oi":["b"],"p":["a","edges"]}
			]`,
		},
		{
			name:  "to another parent before a sibling",
			base:  `{"_root":{"edges":["a","b"]},"a":{},"b":{"edges":["c"]},"c":{}}`,
			run:   move("c", "b", graph.RootKey, Before("b")),
			graph: `{"_root":{"edges":["a","c","b"]},"a":{},"b":{},"c":{}}`,
			ops: `[
				{"ld":"b","li":"c","p":["_root","edges",1]},
				{"li":"b","p":["_root","edges",2]},
				{"od":["c"],"p":["b","edges"]}
			]`,
		},
		{
			name:  "from the only edge of the root",
			base:  `{"_root":{"edges":["a"]},"a":{},"b":{"edges":[]}}`,
			run:   move("a", graph.RootKey, "b"),
			graph: `{"_root":{},"a":{},"b":{"edges":["a"]}}`,
			ops: `[
				{"od":["a"],"p":["_root","edges"]},
				{"li":"a","p":["b","edges",0]}
			]`,
		},
		{
			name:  "shared node to a third parent",
			base:  `{"_root":{"edges":["a","b","c"]},"a":{"edges":["s"]},"b":{"edges":["s"]},"c":{},"s":{}}`,
			run:   move("s", "a", "c"),
			graph: `{"_root":{"edges":["a","b","c"]},"a":{},"b":{"edges":["s"]},"c":{"edges":["s"]},"s":{}}`,
			ops: `[
				{"od":["s"],"p":["a","edges"]},
				{"oi":["s"],"p":["c","edges"]}
			]`,
		},
		{
			name: "invalid id",
			base: `{"_root":{"edges":["a"]},"a":{}}`,
			run:  move("x", graph.RootKey, "a"),
			err:  ErrIDNotFound,
		},
		{
			name: "invalid parent",
			base: `{"_root":{"edges":["a","b"]},"a":{},"b":{}}`,
			run:  move("b", "x", "a"),
			err:  ErrParentNotFound,
		},
		{
			name: "invalid toParent",
			base: `{"_root":{"edges":["a"]},"a":{}}`,
			run:  move("a", graph.RootKey, "x"),
			err:  ErrToParentNotFound,
		},
		{
			name: "invalid toBefore",
			base: `{"_root":{"edges":["a"]},"a":{},"b":{}}`,
			run:  move("a", graph.RootKey, "b", Before("foo")),
			err:  ErrToBeforeNotFound,
		},
		{
			name: "parent does not connect to id",
			base: `{"_root":{"edges":["a"]},"a":{},"b":{}}`,
			run:  move("b", graph.RootKey, "a"),
			err:  ErrNotConnected,
		},
		{
			name: "cycles",
			base: `{"_root":{"edges":["a"]},"a":{"edges":["b"]},"b":{}}`,
			run:  move("a", graph.RootKey, "b"),
			err:  ErrCycle,
		},
		{
			name: "clone to same parent",
			base: `{"_root":{"edges":["a","clone"]},"a":{"edges":["clone"]},"clone":{}}`,
			run:  move("clone", graph.RootKey, "a"),
			err:  ErrMoveToSameParent,
		},
		{
			name: "section onto a branch",
			base: `{"_root":{"edges":["a","sectionNodeId"]},"a":{},"sectionNodeId":{"type":360}}`,
			run:  move("sectionNodeId", graph.RootKey, "a"),
			err:  ErrSectionMove,
		},
		{
			name: "section onto a branch within a folder",
			base: `{
				"_root":{"edges":["internalPortalId"]},
				"internalPortalId":{"type":300,"edges":["a","sectionNodeId"]},
				"sectionNodeId":{"type":360},
				"a":{"edges":["b"]},
				"b":{}
			}`,
			run: move("sectionNodeId", "internalPortalId", "b"),
			err: ErrSectionMove,
		},
	})
}
