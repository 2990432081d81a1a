package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost pins the work factor so a library default bump can't silently
// change hashing behavior between deploys.
const bcryptCost = 10

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(b), err
}

// CheckPassword returns nil when password matches hash. Hashes produced at
// a different cost still verify; bcrypt embeds the cost in the hash.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
