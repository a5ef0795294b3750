package staticpages

import "errors"

// Sentinel errors for library operations.
var (
	ErrDelimiterCollision = errors.New("page content contains the quoting delimiter")
	ErrReadPage           = errors.New("failed to read page")
	ErrReadStylesheet     = errors.New("failed to read stylesheet")
	ErrNilSource          = errors.New("page source cannot be nil")

	// Site validation errors.
	ErrInvalidSite = errors.New("invalid site")

	// Emitter option validation errors.
	ErrInvalidDelimiter = errors.New("invalid dollar-quote delimiter")
	ErrInvalidTable     = errors.New("invalid table name")
	ErrInvalidWorkers   = errors.New("invalid worker count")
)
