// Package auth implements the credential and token engine: salted password
// hashing and issuing/validating signed, time-bound access tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt hash of a random string. Login verifies
// against it when the username does not exist, so the response time does
// not reveal whether an account is present.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword returns a salted bcrypt hash of the plaintext. Two calls with
// the same input produce different hashes that both verify.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckDummyPassword burns the same work as a real verification. It always
// returns false.
func CheckDummyPassword(password string) bool {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
	return false
}
