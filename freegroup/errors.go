package freegroup

import "errors"

// Errors
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotAPermutation       = errors.New("not a permutation")
	ErrUndefinedOperation    = errors.New("cyclic words cannot be multiplied")
	ErrNotMinimal            = errors.New("presentation is not minimal")
	ErrCollaboratorInvariant = errors.New("cut size exceeds vertex valence")
	ErrUnmarshal             = errors.New("unmarshal failed")
	ErrBadCatalogParam       = errors.New("bad catalog param")
	ErrCatalogReadOnly       = errors.New("catalog is read-only")
	ErrBadConfig             = errors.New("bad config")
)
