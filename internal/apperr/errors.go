package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyDirectory  = errors.New("notes directory is empty")
	ErrLineOutOfRange  = errors.New("line index out of range")
	ErrInvalidEncoding = errors.New("invalid utf-8 content")
	ErrInvalidName     = errors.New("invalid note name")
)
