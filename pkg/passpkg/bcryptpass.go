// Package passpkg provides hashing functionality for user secrets.
package passpkg

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of the given secret.
func Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Check returns nil if the secret matches the given hash.
func Check(secret, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret))
}
