package catalog

import "errors"

var (
	// ErrMalformedDocument indicates the definitions document is not a
	// mapping from engine name to a list of definition blocks.
	ErrMalformedDocument = errors.New("malformed definitions document")

	// ErrMissingURLs indicates a definition block has no urls field.
	ErrMissingURLs = errors.New("definition block missing urls")

	// ErrCatalogRequired is returned when a catalog is not provided.
	ErrCatalogRequired = errors.New("catalog required")
)
