package auth

// MockStore is an in-memory secret store for testing.
type MockStore struct {
	secrets map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{secrets: make(map[string]string)}
}

func (m *MockStore) SetSecret(clientID string, secret string) error {
	m.secrets[NormalizeClientID(clientID)] = secret
	return nil
}

func (m *MockStore) GetSecret(clientID string) (string, error) {
	secret, ok := m.secrets[NormalizeClientID(clientID)]
	if !ok {
		return "", ErrSecretNotFound
	}
	return secret, nil
}

func (m *MockStore) DeleteSecret(clientID string) error {
	key := NormalizeClientID(clientID)
	if _, ok := m.secrets[key]; !ok {
		return ErrSecretNotFound
	}
	delete(m.secrets, key)
	return nil
}
