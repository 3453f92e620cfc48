package cache

import "time"

// Policy decides whether a cache entry may be evicted. The store never
// evicts unless Prune is invoked explicitly with a policy.
type Policy interface {
	// Evict reports whether the entry should be removed.
	Evict(e Entry) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(e Entry) bool

// Evict implements Policy.
func (f PolicyFunc) Evict(e Entry) bool {
	return f(e)
}

// KeepAll never evicts anything. It is the default behavior.
func KeepAll() Policy {
	return PolicyFunc(func(Entry) bool { return false })
}

// MaxAge evicts entries whose modification time is older than d.
func MaxAge(d time.Duration) Policy {
	cutoff := time.Now().Add(-d)
	return PolicyFunc(func(e Entry) bool {
		return e.ModTime.Before(cutoff)
	})
}
