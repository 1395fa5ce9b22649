package artwork

import "errors"

// Run-fatal error categories. Commands and handlers branch on these with
// errors.Is; the wrapped message carries the operation that failed.
var (
	// ErrBucketUnavailable means the object listing could not be obtained.
	// Nothing has been persisted when it is returned.
	ErrBucketUnavailable = errors.New("artwork bucket unavailable")

	// ErrPersistence means a delete, insert or commit failed. The affected
	// artwork's transaction is rolled back and the run stops; artworks
	// committed earlier in the run remain committed.
	ErrPersistence = errors.New("artwork media persistence failed")
)
