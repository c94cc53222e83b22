package memory

import "errors"

// ErrNoSession is returned when an operation targets an identity with no
// active session in memory.
var ErrNoSession = errors.New("no active session")
