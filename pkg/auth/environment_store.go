package auth

import (
	"os"
	"time"

	"twfollowers/pkg/config"
)

// EnvironmentAccountName names the account read from the environment
const EnvironmentAccountName = "env"

// EnvironmentStore exposes a bearer token set in the environment as a read-only account
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

func environmentToken() string {
	if token := os.Getenv("TWFOLLOWERS_BEARER_TOKEN"); token != "" {
		return token
	}
	return os.Getenv(config.BearerTokenEnv)
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment token for the "env" account, or any name when name is empty
func (e *EnvironmentStore) Retrieve(name string) (*Account, error) {
	token := environmentToken()
	if token == "" {
		return nil, ErrCredentialsNotFound
	}
	if name != "" && name != EnvironmentAccountName {
		return nil, ErrCredentialsNotFound
	}

	return &Account{
		Name:         EnvironmentAccountName,
		BearerToken:  token,
		LastModified: time.Now(),
	}, nil
}

// List returns a single account if the token is set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(name string) error {
	return ErrStoreUnavailable
}

func (e *EnvironmentStore) Exists(name string) bool {
	_, err := e.Retrieve(name)
	return err == nil
}
