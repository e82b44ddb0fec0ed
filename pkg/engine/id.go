package engine

import "sync/atomic"

// globalIDCounter is the source of instance identities.
var globalIDCounter uint64

// nextID returns the next instance identity.
// IDs are monotonically increasing and never reused; 0 means unmounted.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
