package graph

import "errors"

var (
	ErrUnknownType = errors.New("unknown component type")
	ErrNotObject   = errors.New("graph document must be an object")
)
