package libreview

import (
	"errors"
	"fmt"
)

// ErrAPI is the base error for every client failure. The more specific
// sentinels below all wrap it, so callers may match broadly with
// errors.Is(err, ErrAPI) or narrowly with a specific sentinel.
var (
	ErrAPI = errors.New("libreview api")

	// ErrAuthentication indicates rejected credentials. Not retriable by
	// the client itself.
	ErrAuthentication = fmt.Errorf("%w: invalid credentials", ErrAPI)

	// ErrTimeout indicates the transport deadline was exceeded.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrAPI)

	// ErrResponse indicates a body that could not be parsed as JSON.
	ErrResponse = fmt.Errorf("%w: unexpected response", ErrAPI)
)
