package store

import "errors"

var (
	// ErrItemNotFound is returned when no item with the requested ID exists.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemAlreadyExists is returned on an identity conflict, e.g. a
	// unique-violation from the postgres backend.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrBuildingSQLQuery is returned when SQL construction fails.
	ErrBuildingSQLQuery = errors.New("error building SQL query")
	// ErrExecutingQuery is returned on a driver-level query failure.
	ErrExecutingQuery = errors.New("error executing query")
	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("error scanning row")
)
