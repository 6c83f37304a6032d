package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrLocked       = errors.New("invoice tool is locked")
	ErrWrongPIN     = errors.New("wrong PIN")
	ErrUpstream     = errors.New("upstream service failed")
)
