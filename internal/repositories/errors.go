package repositories

import "errors"

// ErrDuplicateRow is returned by the in-memory repositories when an insert
// collides on a primary key or unique column, mirroring the constraint
// violations a real store would raise.
var ErrDuplicateRow = errors.New("duplicate row")
