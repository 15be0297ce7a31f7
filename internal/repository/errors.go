package repository

import "errors"

// ErrNotAffected is returned by conditional updates whose condition matched
// no row.
var ErrNotAffected = errors.New("row affected is empty")
