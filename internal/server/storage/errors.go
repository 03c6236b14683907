package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that the record was not found in storage
	ErrRecordNotFound = errors.New("record not found")
)
