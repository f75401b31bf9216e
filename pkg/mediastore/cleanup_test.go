package mediastore

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
)

// fakeStore records destroy calls and fails for configured IDs.
type fakeStore struct {
	destroyed []string
	failOn    map[string]bool
}

func (f *fakeStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Image, error) {
	return Image{}, errors.New("not implemented")
}

func (f *fakeStore) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	if f.failOn[publicID] {
		return errors.New("object store unavailable")
	}
	return nil
}

func TestCleanupDeletesEveryImage(t *testing.T) {
	store := &fakeStore{}
	ids := []string{"car_listings/a", "car_listings/b", "car_listings/c"}

	results := Cleanup(context.Background(), store, ids)

	if !reflect.DeepEqual(store.destroyed, ids) {
		t.Errorf("expected one destroy call per image, got %v", store.destroyed)
	}
	if failed := FailedIDs(results); failed != nil {
		t.Errorf("expected no failures, got %v", failed)
	}
}

func TestCleanupContinuesPastFailures(t *testing.T) {
	store := &fakeStore{failOn: map[string]bool{"car_listings/b": true}}
	ids := []string{"car_listings/a", "car_listings/b", "car_listings/c"}

	results := Cleanup(context.Background(), store, ids)

	// A mid-loop failure must not stop the remaining deletions
	if len(store.destroyed) != 3 {
		t.Fatalf("expected all 3 images attempted, got %d", len(store.destroyed))
	}
	failed := FailedIDs(results)
	if !reflect.DeepEqual(failed, []string{"car_listings/b"}) {
		t.Errorf("expected only car_listings/b to fail, got %v", failed)
	}
}

func TestCleanupEmptyList(t *testing.T) {
	store := &fakeStore{}
	results := Cleanup(context.Background(), store, nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}
