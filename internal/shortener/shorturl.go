package shortener

import "regexp"

// KeyLength is the fixed number of characters in a short key.
const KeyLength = 6

// Alphabet is the set of characters a short key is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

var keyPattern = regexp.MustCompile(`^[a-z]{6}$`)

// Key represents a short URL key.
type Key string

// Valid reports whether k has the shape of a generated key.
func (k Key) Valid() bool {
	return keyPattern.MatchString(string(k))
}

// URLMapping is a stored key to URL association.
type URLMapping struct {
	Key   Key
	Value string
}

// storeKey namespaces a key inside the shared key store.
func storeKey(k Key) string {
	return keyPrefix + string(k)
}

const keyPrefix = "url:"
