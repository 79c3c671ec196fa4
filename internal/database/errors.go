package database

import "errors"

var (
	// ErrKeyNotFound is returned when a key has no stored value
	ErrKeyNotFound = errors.New("key not found")
	// ErrEmptyKey is returned for blank keys
	ErrEmptyKey = errors.New("key cannot be empty")
)
