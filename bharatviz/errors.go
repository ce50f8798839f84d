package bharatviz

import (
	"errors"
)

var (
	// ErrValidation marks rejected input: empty data, unknown color scale,
	// unknown map type or malformed tabular input.
	ErrValidation = errors.New("invalid input")
	// ErrTransport marks network failures, non-success HTTP statuses and
	// response bodies that do not parse as JSON.
	ErrTransport = errors.New("api request failed")
	// ErrResponse marks a server-reported failure or a response missing the
	// mandatory PNG export.
	ErrResponse = errors.New("api error")
	// ErrCapability marks a missing optional capability, such as image
	// decoding or a viewer.
	ErrCapability = errors.New("capability not available")
)
