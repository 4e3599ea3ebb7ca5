package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	// MinTemporaryPasswordLength is the shortest password TemporaryPassword emits.
	MinTemporaryPasswordLength = 12
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := randomIndex(limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position]
	}

	return string(value), nil
}

// TemporaryPassword returns a password of at least MinTemporaryPasswordLength
// characters holding one uppercase letter, one lowercase letter and one digit.
// Look-alike characters (I, O, l, 0, 1) are never used.
func TemporaryPassword(length int) (string, error) {
	if length < MinTemporaryPasswordLength {
		length = MinTemporaryPasswordLength
	}

	required := make([]byte, 0, 3)
	for _, alphabet := range []string{upperAlphabet, lowerAlphabet, digitAlphabet} {
		char, err := RandomString(1, alphabet)
		if err != nil {
			return "", err
		}
		required = append(required, char[0])
	}

	rest, err := RandomString(length-len(required), upperAlphabet+lowerAlphabet+digitAlphabet)
	if err != nil {
		return "", err
	}

	value := append(required, rest...)
	if err := shuffle(value); err != nil {
		return "", err
	}
	return string(value), nil
}

func shuffle(value []byte) error {
	for index := len(value) - 1; index > 0; index-- {
		swap, err := randomIndex(big.NewInt(int64(index + 1)))
		if err != nil {
			return err
		}
		value[index], value[swap] = value[swap], value[index]
	}
	return nil
}

func randomIndex(limit *big.Int) (int64, error) {
	position, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return 0, err
	}
	return position.Int64(), nil
}
