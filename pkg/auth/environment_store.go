package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements KeyStore using the XFOLLOW_API_KEY environment
// variable. Read-only; Store and Delete are unsupported.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based key store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreUnavailable
}

// Retrieve gets the API key from the environment
func (e *EnvironmentStore) Retrieve() (*Credential, error) {
	key := os.Getenv("XFOLLOW_API_KEY")
	if key == "" {
		return nil, ErrKeyNotFound
	}

	return &Credential{
		Key:          key,
		LastModified: time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if the environment key is set
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("XFOLLOW_API_KEY") != ""
}
