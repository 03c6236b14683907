package middleware

import "errors"

var (
	errInvalidAuthHeader = errors.New("invalid authorization header format")
	errMissingIdentity   = errors.New("missing credentials")
)
