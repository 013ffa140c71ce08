package ot

import "errors"

var (
	ErrBadOp    = errors.New("malformed op")
	ErrBadPath  = errors.New("bad path")
	ErrNotFound = errors.New("path not found")
	ErrMismatch = errors.New("deleted value does not match document")
)
