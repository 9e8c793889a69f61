package batch

import "errors"

var (
	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrSinkRequired is returned when a result sink is not provided.
	ErrSinkRequired = errors.New("result sink required")
)
