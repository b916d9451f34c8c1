package utils

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/HimanshuNaik19/Blog-Platform/config"
)

// HashPassword hashes an account password with bcrypt. The cost comes from
// configuration so operators can raise it as hardware catches up.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func bcryptCost() int {
	cost := config.Get().BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}
