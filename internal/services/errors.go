package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. Not-found
// reads are signalled with a nil result instead; these cover the write paths
// where "absent" and "conflict" must stay distinguishable.
var (
	// ErrCategoryExists means another category already owns the requested
	// name (compared case-insensitively).
	ErrCategoryExists = errors.New("category name already exists")

	// ErrCategoryNotFound means an update targeted a category id that does
	// not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryHasProducts means a delete was blocked because products
	// still reference the category.
	ErrCategoryHasProducts = errors.New("category still has products")
)
