package localstore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetDelete(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put(BucketProperties, "p1", []byte(`{"id":"p1"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	payload, err := store.Get(BucketProperties, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(payload) != `{"id":"p1"}` {
		t.Errorf("payload = %s", payload)
	}

	if err := store.Delete(BucketProperties, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	payload, err = store.Get(BucketProperties, "p1")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if payload != nil {
		t.Errorf("payload after delete = %s, want nil", payload)
	}

	// Deleting an absent id stays a no-op.
	if err := store.Delete(BucketProperties, "ghost"); err != nil {
		t.Errorf("Delete absent id: %v", err)
	}
}

func TestReplaceAllSwapsContents(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put(BucketClients, "stale", []byte("old")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.ReplaceAll(BucketClients, map[string][]byte{
		"c1": []byte("one"),
		"c2": []byte("two"),
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	if payload, _ := store.Get(BucketClients, "stale"); payload != nil {
		t.Error("stale record survived ReplaceAll")
	}
	size, err := store.Size(BucketClients)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 2 {
		t.Errorf("size = %d, want 2", size)
	}
}

func TestListReturnsEveryRecord(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Put(BucketUsers, id, []byte(id)); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}
	records, err := store.List(BucketUsers)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("List returned %d records, want 3", len(records))
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Put(BucketCampaigns, "c1", []byte("draft")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	payload, err := reopened.Get(BucketCampaigns, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(payload) != "draft" {
		t.Errorf("payload = %s, want the record to survive a restart", payload)
	}
}
