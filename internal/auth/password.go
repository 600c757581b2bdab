package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// prehash folds a password of any length into 44 bytes, below bcrypt's
// 72 byte input limit. Bytes past the limit would otherwise be rejected.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(password))
	return err == nil
}

// dummyHash is compared against when no user matches an email, so that an
// unknown email costs the same as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, _ := HashPassword("files-manager-dummy-password")
	return h
})
