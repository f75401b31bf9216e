package mediastore

import (
	"context"
)

// CleanupResult reports the outcome of deleting one external image.
type CleanupResult struct {
	PublicID string
	Err      error
}

// Failed reports whether the deletion failed.
func (r CleanupResult) Failed() bool {
	return r.Err != nil
}

// Cleanup deletes every identified image from the external store.
// The loop is best-effort: a failure is recorded and the remaining images
// are still attempted, so callers can see exactly which objects were left
// behind instead of the failures being swallowed.
func Cleanup(ctx context.Context, s Store, publicIDs []string) []CleanupResult {
	results := make([]CleanupResult, 0, len(publicIDs))
	for _, id := range publicIDs {
		results = append(results, CleanupResult{PublicID: id, Err: s.Destroy(ctx, id)})
	}
	return results
}

// FailedIDs extracts the identifiers whose deletion failed.
func FailedIDs(results []CleanupResult) []string {
	var failed []string
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, r.PublicID)
		}
	}
	return failed
}
