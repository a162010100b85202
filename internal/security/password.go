package security

import "golang.org/x/crypto/bcrypt"

// DefaultCost matches the salt rounds the user collection has always been
// hashed with.
const DefaultCost = 10

// HashPassword hashes a plain text password with bcrypt at DefaultCost.
func HashPassword(plain string) (string, error) {
	return NewHasher(DefaultCost)(plain)
}

// NewHasher returns a bcrypt hash function for the given cost. Costs outside
// bcrypt's range fall back to DefaultCost.
func NewHasher(cost int) func(plain string) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	return func(plain string) (string, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
		if err != nil {
			return "", err
		}

		return string(hash), nil
	}
}

// helper that compares a bcrypt hash with a plaintext password.

func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
