package store

import "errors"

// error kinds returned by the store, check with errors.Is
var (
	ErrConnection = errors.New("connection error")
	ErrSchema     = errors.New("schema error")
	ErrValidation = errors.New("validation error")
	ErrWrite      = errors.New("write error")
	ErrQuery      = errors.New("query error")
)
