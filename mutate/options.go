package mutate

import "github.com/signadot/flowgraph/graph"

// Config holds the optional arguments of the mutations.  Each mutation
// reads the fields relevant to it.
type Config struct {
	// Parent is the node to add or clone under.
	Parent string

	// Before names the sibling to insert in front of.  Empty appends.
	Before string

	// Children are added below a new node, or synchronized with the
	// edges of an updated node.
	Children []NodeSpec

	// RemoveMissing makes Update delete data keys absent from the new
	// data.
	RemoveMissing bool

	// IDs generates the ids of new nodes.
	IDs IDFunc
}

type Opt func(*Config)

func Parent(id string) Opt {
	return func(c *Config) { c.Parent = id }
}

func Before(id string) Opt {
	return func(c *Config) { c.Before = id }
}

// Children appends child specs.  With Update, the node's edges are made
// to list exactly these children, in order.
func Children(cs ...NodeSpec) Opt {
	return func(c *Config) {
		c.Children = append(c.Children, cs...)
		if c.Children == nil {
			c.Children = []NodeSpec{}
		}
	}
}

func RemoveMissing() Opt {
	return func(c *Config) { c.RemoveMissing = true }
}

// IDs sets the generator for the ids of new nodes.
func IDs(f IDFunc) Opt {
	return func(c *Config) { c.IDs = f }
}

func config(opts []Opt) *Config {
	c := &Config{Parent: graph.RootKey, IDs: RandomID}
	for _, o := range opts {
		o(c)
	}
	if c.Parent == "" {
		c.Parent = graph.RootKey
	}
	if c.IDs == nil {
		c.IDs = RandomID
	}
	return c
}
