package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost sama dengan salt rounds 10
const BcryptCost = 10

// MaxPasswordBytes batas input bcrypt
const MaxPasswordBytes = 72

var (
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrPasswordTooLong  = bcrypt.ErrPasswordTooLong
)

func HashPassword(plain string) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ComparePassword returns ErrPasswordMismatch for a wrong password and the
// bcrypt error for a malformed hash.
func ComparePassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
