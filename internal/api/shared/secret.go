package shared

import "crypto/subtle"

// CallbackSecretHeader carries the shared callback secret.
const CallbackSecretHeader = "X-Callback-Secret"

// SecretMatches reports whether provided equals expected in constant time.
// An empty provided value never matches.
func SecretMatches(provided, expected string) bool {
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}
