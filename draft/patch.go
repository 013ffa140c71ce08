package draft

import (
	"fmt"

	"github.com/signadot/flowgraph/ot"
)

// Kind names a generic patch operation.
type Kind string

const (
	Add     Kind = "add"
	Remove  Kind = "remove"
	Replace Kind = "replace"
)

// Patch is one generic change, in the style of RFC 6902.  Forward and
// inverse patches are produced in pairs.
type Patch struct {
	Op    Kind    `json:"op"`
	Path  ot.Path `json:"path"`
	Value any     `json:"value,omitempty"`
}

func (p Patch) String() string {
	if p.Op == Remove {
		return fmt.Sprintf("%s %s", p.Op, p.Path)
	}
	return fmt.Sprintf("%s %s %v", p.Op, p.Path, p.Value)
}

// ToOps converts paired forward and inverse patches to json0 ops.  A
// patch addressing an index of a node's edges gives a list op, any other
// patch an object op.  The inverse patch tells a pure insert from a
// replace.
func ToOps(fwd, inv []Patch) []ot.Op {
	res := make([]ot.Op, 0, len(fwd))
	for i, f := range fwd {
		var b Patch
		if i < len(inv) {
			b = inv[i]
		}
		op := ot.Op{P: f.Path}
		if k, _ := f.Path.Key(1); k == "edges" && len(f.Path) > 2 {
			switch f.Op {
			case Add:
				op.LI = f.Value
			case Replace:
				op.LD = b.Value
				switch b.Op {
				case Replace:
					op.LI = f.Value
				case Add:
					op.P = b.Path
				}
			}
		} else {
			switch f.Op {
			case Add:
				op.OI = f.Value
			case Remove:
				if b.Op == Add {
					op.OD = b.Value
				}
			case Replace:
				if b.Op == Replace {
					op.OI = f.Value
					op.OD = b.Value
				}
			}
		}
		res = append(res, op)
	}
	return res
}
