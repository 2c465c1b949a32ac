package snapshot

import "errors"

// ErrNotFound indicates a URL that is not present in the local snapshot.
var ErrNotFound = errors.New("bookmark not found in local cache")
