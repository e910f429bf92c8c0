package secret

// SecretStore looks up sensitive values such as database passwords.
// The default implementation reads the macOS Keychain.
type SecretStore interface {
	// Get retrieves the secret value for the given key.
	// Returns a nil slice and nil error if key does not exist.
	Get(key string) ([]byte, error)
}
