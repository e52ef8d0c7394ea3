package summary

import "errors"

var (
	// ErrNotFound is returned when the collection id does not exist.
	ErrNotFound = errors.New("collection not found")
	// ErrGenerationFailed covers model errors, timeouts, quota and
	// malformed/empty model output. No state was written; the whole
	// flow is safe to retry.
	ErrGenerationFailed = errors.New("summary generation failed")
	// ErrPersistFailed means generation succeeded but the commit did not.
	// Retrying the whole flow would waste a second model call.
	ErrPersistFailed = errors.New("summary persist failed")
	// ErrStoreUnavailable covers store read failures before any
	// generation call was made.
	ErrStoreUnavailable = errors.New("store unavailable")
)
