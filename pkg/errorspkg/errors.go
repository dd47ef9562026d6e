// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrMalformedRequest indicates the request could not be decoded.
	ErrMalformedRequest = errors.New("malformed request")
)
