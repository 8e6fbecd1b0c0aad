// Package ratelimit throttles calls to the lyrics resolver across every
// process that shares a lock file.
//
// The lock file holds the epoch-millisecond time of the last permitted call.
// Acquire takes an exclusive flock on it, waits out the remainder of the
// interval, and records the new time before releasing the lock, so waiting
// callers in other processes queue behind one another instead of overlapping.
// Calls marked burst-eligible may skip the wait shortly after a recorded call,
// which lets a search and the fetch that follows it count as one action.
//
// The limiter never fails a caller: I/O problems and corrupt state are logged
// and treated as "no prior call".
package ratelimit
