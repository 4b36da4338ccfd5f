package auth

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestManagerStoreAndRetrieve(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	err := manager.Store(&Credential{Key: "test-api-key"})
	if err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}

	cred, err := manager.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve key: %v", err)
	}
	if cred.Key != "test-api-key" {
		t.Errorf("Expected key 'test-api-key', got %q", cred.Key)
	}
	if cred.LastModified.IsZero() {
		t.Error("Expected LastModified to be set on store")
	}
}

func TestManagerRejectsEmptyKey(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	if err := manager.Store(&Credential{}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
	if err := manager.Store(nil); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey for nil credential, got %v", err)
	}
}

func TestManagerFallsBackToNextStore(t *testing.T) {
	failing := NewMockStore()
	failing.StoreError = errors.New("backend unavailable")
	working := NewMockStore()

	manager := NewManagerWithStores(failing, working)

	if err := manager.Store(&Credential{Key: "fallback-key"}); err != nil {
		t.Fatalf("Expected fallback store to accept the key: %v", err)
	}

	if failing.Exists() {
		t.Error("Failing store should not hold the key")
	}
	if !working.Exists() {
		t.Error("Fallback store should hold the key")
	}
}

func TestManagerRetrieveNotFound(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	if _, err := manager.Retrieve(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestManagerDelete(t *testing.T) {
	first := NewMockStore()
	second := NewMockStore()
	manager := NewManagerWithStores(first, second)

	// Both stores hold a key
	if err := first.Store(&Credential{Key: "k1"}); err != nil {
		t.Fatalf("Failed to seed first store: %v", err)
	}
	if err := second.Store(&Credential{Key: "k2"}); err != nil {
		t.Fatalf("Failed to seed second store: %v", err)
	}

	if err := manager.Delete(); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if manager.Exists() {
		t.Error("Expected no key after delete")
	}
}

func TestManagerDeleteNothingStored(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	if err := manager.Delete(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestEnvironmentStore(t *testing.T) {
	t.Setenv("XFOLLOW_API_KEY", "env-key")

	store := NewEnvironmentStore()
	if !store.Exists() {
		t.Error("Expected environment key to exist")
	}

	cred, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if cred.Key != "env-key" {
		t.Errorf("Expected 'env-key', got %q", cred.Key)
	}

	if err := store.Store(&Credential{Key: "x"}); !errors.Is(err, ErrStoreUnavailable) {
		t.Error("Expected ErrStoreUnavailable for environment store")
	}
	if err := store.Delete(); !errors.Is(err, ErrStoreUnavailable) {
		t.Error("Expected ErrStoreUnavailable for environment delete")
	}
}

func TestEnvironmentStoreEmpty(t *testing.T) {
	t.Setenv("XFOLLOW_API_KEY", "")

	store := NewEnvironmentStore()
	if store.Exists() {
		t.Error("Expected no environment key")
	}
	if _, err := store.Retrieve(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestEncryptedFileStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XFOLLOW_PASSPHRASE", "test-passphrase")

	store, err := NewEncryptedFileStore(filepath.Join(dir, "apikey.enc"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if store.Exists() {
		t.Error("Expected no key in a fresh store")
	}

	if err := store.Store(&Credential{Key: "secret-key"}); err != nil {
		t.Fatalf("Failed to store: %v", err)
	}

	// A second store instance with the same passphrase reads it back
	store2, err := NewEncryptedFileStore(filepath.Join(dir, "apikey.enc"))
	if err != nil {
		t.Fatalf("Failed to create second store: %v", err)
	}

	cred, err := store2.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if cred.Key != "secret-key" {
		t.Errorf("Expected 'secret-key', got %q", cred.Key)
	}

	if err := store2.Delete(); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if store2.Exists() {
		t.Error("Expected key to be gone after delete")
	}
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("XFOLLOW_PASSPHRASE", "right")
	store, err := NewEncryptedFileStore(filepath.Join(dir, "apikey.enc"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Store(&Credential{Key: "secret"}); err != nil {
		t.Fatalf("Failed to store: %v", err)
	}

	t.Setenv("XFOLLOW_PASSPHRASE", "wrong")
	store2, err := NewEncryptedFileStore(filepath.Join(dir, "apikey.enc"))
	if err != nil {
		t.Fatalf("Failed to create second store: %v", err)
	}
	if _, err := store2.Retrieve(); err == nil {
		t.Error("Expected retrieval with the wrong passphrase to fail")
	}
}
