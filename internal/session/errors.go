package session

import "errors"

var (
	// ErrNoSession is returned when nothing is stored
	ErrNoSession = errors.New("no session")
	// ErrTampered is returned when the stored token does not match the blob
	ErrTampered = errors.New("session failed integrity check")
	// ErrExpired is returned when the session is older than its TTL
	ErrExpired = errors.New("session expired")
	// ErrNoUser is returned when saving a session without a user id
	ErrNoUser = errors.New("session requires a user id")
)
