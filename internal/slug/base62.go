// Package slug turns counter values into short public identifiers.
package slug

import (
	"errors"
	"strings"
)

// Alphabet is the ordered set of symbols used for encoding.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = int64(len(Alphabet))

var (
	// ErrNegative is returned when encoding a negative value.
	ErrNegative = errors.New("slug: negative value")
	// ErrInvalidSymbol is returned when decoding a string outside the alphabet.
	ErrInvalidSymbol = errors.New("slug: invalid symbol")
	// ErrOverflow is returned when a decoded value does not fit in an int64.
	ErrOverflow = errors.New("slug: value overflows int64")
)

// Encode returns the base62 representation of n.
// Zero encodes to "0"; values below 62^6 encode to at most six characters.
func Encode(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegative
	}

	if n == 0 {
		return Alphabet[:1], nil
	}

	var buf [11]byte // 62^11 > MaxInt64

	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%base]
		n /= base
	}

	return string(buf[i:]), nil
}

// Decode is the inverse of Encode for canonical encodings.
func Decode(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidSymbol
	}

	var n int64

	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(Alphabet, s[i])
		if idx < 0 {
			return 0, ErrInvalidSymbol
		}

		if n > (1<<63-1-int64(idx))/base {
			return 0, ErrOverflow
		}

		n = n*base + int64(idx)
	}

	return n, nil
}
