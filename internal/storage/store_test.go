package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put(KeyDeviceID, "device-123"); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := store.Get(KeyDeviceID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "device-123" {
		t.Errorf("Get() = %q, want %q", got, "device-123")
	}
}

func TestStorePutReplaces(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put(KeyBabyInfo, `{"id":1}`); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := store.Put(KeyBabyInfo, `{"id":2}`); err != nil {
		t.Fatalf("Put() second error: %v", err)
	}

	got, err := store.Get(KeyBabyInfo)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != `{"id":2}` {
		t.Errorf("Get() = %q, want replaced value", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("nothing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStoreDeleteAbsentKey(t *testing.T) {
	store := openTestStore(t)

	if err := store.Delete("nothing"); err != nil {
		t.Errorf("Delete() of absent key should not fail: %v", err)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	keys := []string{KeyToken, KeyUserInfo, KeyFamilyInfo, KeyBabyInfo}
	for _, key := range keys {
		if err := store.Put(key, "value"); err != nil {
			t.Fatalf("Put(%s) error: %v", key, err)
		}
	}
	if err := store.Put(KeyDeviceID, "device-123"); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if err := store.Clear(keys...); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	for _, key := range keys {
		if _, err := store.Get(key); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%s) after Clear = %v, want ErrNotFound", key, err)
		}
	}

	// Device identity survives a logout.
	if got, err := store.Get(KeyDeviceID); err != nil || got != "device-123" {
		t.Errorf("Get(deviceId) = %q, %v; want value preserved", got, err)
	}
}
