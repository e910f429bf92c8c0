package secret

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const keychainService = "salaryclean"

// errItemNotFound is the exit code `security` returns for a missing item.
const errItemNotFound = 44

// KeychainStore implements SecretStore using the macOS Keychain
// via the `security` CLI tool.
type KeychainStore struct {
	Service string

	// run executes the command; replaced in tests.
	run func(name string, args ...string) ([]byte, error)
}

// NewKeychainStore creates a new KeychainStore.
func NewKeychainStore() *KeychainStore {
	return &KeychainStore{Service: keychainService}
}

// Get retrieves a secret from the macOS Keychain.
func (k *KeychainStore) Get(key string) ([]byte, error) {
	run := k.run
	if run == nil {
		run = func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		}
	}
	out, err := run("security", "find-generic-password",
		"-a", key,
		"-s", k.Service,
		"-w", // output only the password
	)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == errItemNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("keychain get %q: %w", key, err)
	}
	return []byte(strings.TrimSpace(string(out))), nil
}
