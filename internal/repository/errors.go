package repository

import "errors"

// ErrNotFound is returned when a query expects a row that does not exist.
// Lookups where absence is a normal state return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")
