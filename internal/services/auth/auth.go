// Package auth stores service principal secrets in the OS keychain.
package auth

import (
	"errors"

	"nathanbeddoewebdev/aznet/internal/util"
)

const ServiceName = "aznet"

var ErrSecretNotFound = errors.New("client secret not found")

type Store interface {
	SetSecret(clientID string, secret string) error
	GetSecret(clientID string) (string, error)
	DeleteSecret(clientID string) error
}

// DefaultStore returns the standard secret store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeClientID normalizes a client ID for consistent keychain lookup.
func NormalizeClientID(clientID string) string {
	return util.NormalizeKey(clientID)
}
