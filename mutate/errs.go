package mutate

import "errors"

var (
	ErrIDExists            = errors.New("id exists")
	ErrIDNotFound          = errors.New("id not found")
	ErrParentNotFound      = errors.New("parent not found")
	ErrBeforeNotFound      = errors.New("before not found")
	ErrNotInParent         = errors.New("not found in parent")
	ErrNotConnected        = errors.New("parent does not connect to id")
	ErrToParentNotFound    = errors.New("toParent not found")
	ErrToBeforeNotFound    = errors.New("toBefore does not exist in toParent")
	ErrSectionPlacement    = errors.New("cannot add sections on branches or in portals")
	ErrSectionMove         = errors.New("cannot move sections onto branches, must be on center of graph")
	ErrMoveToSameParent    = errors.New("cannot move to same parent")
	ErrCycle               = errors.New("cannot create cycle in graph")
	ErrCloneToSameParent   = errors.New("cannot clone to same parent")
	ErrCloneSection        = errors.New("cannot clone sections")
	ErrCloneExternalPortal = errors.New("cannot clone nested flows")
)
