package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Credential holds the stored follower-lookup API key
type Credential struct {
	Key          string    `json:"key"`
	LastModified time.Time `json:"last_modified"`
}

// KeyStore is the interface for storing and retrieving the API key
type KeyStore interface {
	// Store saves the API key
	Store(cred *Credential) error

	// Retrieve gets the stored API key
	Retrieve() (*Credential, error)

	// Delete removes the stored API key
	Delete() error

	// Exists checks if an API key is stored
	Exists() bool
}

// Manager handles API-key storage with fallback mechanisms
type Manager struct {
	stores []KeyStore
}

// NewManager creates a new key manager with appropriate storage backends
func NewManager() (*Manager, error) {
	var stores []KeyStore

	// Try keyring first (system keychain)
	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	// Always add encrypted file store as fallback
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "apikey.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	// Add environment store as last resort
	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager with explicit stores, mainly for tests
func NewManagerWithStores(stores ...KeyStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the API key using the first store that accepts it
func (m *Manager) Store(cred *Credential) error {
	if cred == nil || cred.Key == "" {
		return ErrInvalidKey
	}

	cred.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(cred); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store API key: %w", lastErr)
	}
	return errors.New("no available key stores")
}

// Retrieve gets the API key from the first store that has one
func (m *Manager) Retrieve() (*Credential, error) {
	for _, store := range m.stores {
		if cred, err := store.Retrieve(); err == nil && cred != nil {
			return cred, nil
		}
	}
	return nil, ErrKeyNotFound
}

// Delete removes the API key from every store that holds one
func (m *Manager) Delete() error {
	deleted := false
	for _, store := range m.stores {
		if store.Exists() {
			if err := store.Delete(); err == nil {
				deleted = true
			}
		}
	}
	if !deleted {
		return ErrKeyNotFound
	}
	return nil
}

// Exists checks if any store holds an API key
func (m *Manager) Exists() bool {
	for _, store := range m.stores {
		if store.Exists() {
			return true
		}
	}
	return false
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, "xfollow")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// Sentinel errors
var (
	ErrKeyNotFound      = errors.New("API key not found")
	ErrInvalidKey       = errors.New("invalid API key")
	ErrStoreUnavailable = errors.New("key store unavailable")
)
