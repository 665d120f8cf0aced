package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/monocle-dev/herald/internal/apperror"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	PasswordSymbols   = `!@#$%^&*()-_=+[]{};:'",.<>/?\|~`
)

// ValidatePassword enforces the strength policy: at least MinPasswordLength characters,
// one digit and one symbol from PasswordSymbols.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperror.Validation("password: must be at least 8 characters")
	}

	var hasDigit, hasSymbol bool
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if strings.ContainsRune(PasswordSymbols, r) {
			hasSymbol = true
		}
	}

	if !hasDigit {
		return apperror.Validation("password: must contain at least one number")
	}
	if !hasSymbol {
		return apperror.Validation("password: must contain at least one special character")
	}
	return nil
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
