package service

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidInput  = errors.New("invalid input")
	ErrReaderNil     = errors.New("reader is nil")
)
