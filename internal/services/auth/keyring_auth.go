package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetSecret(clientID string, secret string) error {
	account := NormalizeClientID(clientID)
	return keyring.Set(k.serviceName, account, secret)
}

func (k *KeyringStore) GetSecret(clientID string) (string, error) {
	account := NormalizeClientID(clientID)
	secret, err := keyring.Get(k.serviceName, account)
	if err == nil {
		return secret, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrSecretNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteSecret(clientID string) error {
	account := NormalizeClientID(clientID)
	err := keyring.Delete(k.serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrSecretNotFound
	}
	return err
}
