package forms

import "errors"

// ErrNotFound is returned by repositories when a draft or submission does not
// exist. Services translate it into a typed service error.
var ErrNotFound = errors.New("not found")
