package auth

import "sync"

// MockStore implements KeyStore for testing purposes
type MockStore struct {
	cred *Credential
	mu   sync.RWMutex

	// Error injection for testing
	StoreError    error
	RetrieveError error
	DeleteError   error
}

// NewMockStore creates a new mock key store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Store saves the API key to the mock store
func (m *MockStore) Store(cred *Credential) error {
	if m.StoreError != nil {
		return m.StoreError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cred == nil || cred.Key == "" {
		return ErrInvalidKey
	}

	// Copy to avoid external modifications
	credCopy := *cred
	m.cred = &credCopy

	return nil
}

// Retrieve gets the API key from the mock store
func (m *MockStore) Retrieve() (*Credential, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cred == nil {
		return nil, ErrKeyNotFound
	}

	credCopy := *m.cred
	return &credCopy, nil
}

// Delete removes the API key from the mock store
func (m *MockStore) Delete() error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred == nil {
		return ErrKeyNotFound
	}
	m.cred = nil

	return nil
}

// Exists checks if an API key is stored
func (m *MockStore) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred != nil
}
