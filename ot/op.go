// Package ot holds the json0 operation vocabulary emitted by graph
// mutations, along with helpers to apply, invert and translate it.
package ot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a value in a document.  Elements are object keys
// (string) or list indices (int).
type Path []any

func (p *Path) UnmarshalJSON(d []byte) error {
	var raw []any
	if err := json.Unmarshal(d, &raw); err != nil {
		return err
	}
	res := make(Path, len(raw))
	for i, x := range raw {
		switch y := x.(type) {
		case string:
			res[i] = y
		case float64:
			if y != float64(int(y)) || y < 0 {
				return fmt.Errorf("%w: index %v", ErrBadPath, y)
			}
			res[i] = int(y)
		default:
			return fmt.Errorf("%w: element %v", ErrBadPath, x)
		}
	}
	*p = res
	return nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, x := range p {
		switch y := x.(type) {
		case int:
			parts[i] = strconv.Itoa(y)
		default:
			parts[i] = fmt.Sprint(y)
		}
	}
	return strings.Join(parts, ".")
}

// Key returns the string element at i, if any.
func (p Path) Key(i int) (string, bool) {
	if i < 0 || i >= len(p) {
		return "", false
	}
	s, ok := p[i].(string)
	return s, ok
}

// Index returns the int element at i, if any.
func (p Path) Index(i int) (int, bool) {
	if i < 0 || i >= len(p) {
		return 0, false
	}
	n, ok := p[i].(int)
	return n, ok
}

// Op is a single json0 operation.  A nil field is absent.  OI with OD is
// an object replace, LI with LD a list replace.
type Op struct {
	P  Path `json:"p"`
	OI any  `json:"oi,omitempty"`
	OD any  `json:"od,omitempty"`
	LI any  `json:"li,omitempty"`
	LD any  `json:"ld,omitempty"`
}

func (o Op) IsObject() bool {
	return o.OI != nil || o.OD != nil
}

func (o Op) IsList() bool {
	return o.LI != nil || o.LD != nil
}

func (o Op) String() string {
	d, err := json.Marshal(o)
	if err != nil {
		return fmt.Sprintf("%#v", o)
	}
	return string(d)
}

// Parse decodes a json list of ops.
func Parse(d []byte) ([]Op, error) {
	var ops []Op
	if err := json.Unmarshal(d, &ops); err != nil {
		return nil, err
	}
	for i := range ops {
		if err := ops[i].check(); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
	}
	return ops, nil
}

func (o Op) check() error {
	if len(o.P) == 0 {
		return fmt.Errorf("%w: empty path", ErrBadPath)
	}
	if o.IsObject() && o.IsList() {
		return fmt.Errorf("%w: mixes object and list components", ErrBadOp)
	}
	if !o.IsObject() && !o.IsList() {
		return fmt.Errorf("%w: no component", ErrBadOp)
	}
	last := o.P[len(o.P)-1]
	if _, ok := last.(int); o.IsList() && !ok {
		return fmt.Errorf("%w: list op at non index %v", ErrBadPath, last)
	}
	if _, ok := last.(string); o.IsObject() && !ok {
		return fmt.Errorf("%w: object op at non key %v", ErrBadPath, last)
	}
	return nil
}

// Invert returns the ops which undo ops: reversed, with inserts and
// deletes swapped.
func Invert(ops []Op) []Op {
	res := make([]Op, len(ops))
	for i, o := range ops {
		res[len(ops)-1-i] = Op{
			P:  append(Path(nil), o.P...),
			OI: o.OD,
			OD: o.OI,
			LI: o.LD,
			LD: o.LI,
		}
	}
	return res
}
