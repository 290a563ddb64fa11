// Package password generates random temporary passwords for account provisioning.
package password

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower   = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
	symbols = "!@#$%^&*"

	// MinLength is the smallest password that can hold one character from
	// each required class.
	MinLength = 4

	// DefaultLength is used when no length is configured.
	DefaultLength = 16
)

var all = upper + lower + digits + symbols

// ErrLengthTooShort is returned when the requested length cannot satisfy the
// one-per-class guarantee.
var ErrLengthTooShort = errors.New("password length must be at least 4")

// Generate returns a random password of the given length containing at least
// one uppercase letter, one lowercase letter, one digit and one symbol. The
// result is shuffled so the guaranteed characters do not sit at fixed positions.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", ErrLengthTooShort
	}

	chars := make([]byte, 0, length)

	for _, class := range []string{upper, lower, digits, symbols} {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for len(chars) < length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := shuffle(chars); err != nil {
		return "", err
	}
	return string(chars), nil
}

// pick draws one character uniformly from the given set.
func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle using crypto/rand.
func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}
	return nil
}
