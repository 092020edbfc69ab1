package providers

import "github.com/juju/errors"

var (
	// ErrDatabaseIsClosed returns if you are trying to lookup an address
	// after resolver was closed.
	ErrDatabaseIsClosed = errors.New("database is closed")
)
