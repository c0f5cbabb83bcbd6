package catalog

import "errors"

// ErrMultipleMatches is returned when a lookup by a non-key field matches more than one row.
var ErrMultipleMatches = errors.New("lookup matched more than one record")
