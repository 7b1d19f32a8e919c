package utils

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"unicode/utf8"
)

var digitRunes = []rune("0123456789")

// GenerateRandomDigitString returns n random digits, used for order numbers.
func GenerateRandomDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rand.Intn(len(digitRunes))]
	}
	return string(b)
}

// NewOrderNumber builds a human-readable order number like "ORD-493021".
func NewOrderNumber() string {
	return "ORD-" + GenerateRandomDigitString(6)
}

func Contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}

// Truncate cuts s to at most max bytes, backing up so a multibyte rune is
// never split; the result is always valid UTF-8 when the input is.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// FormatAmount renders a price the way payment providers expect it: two
// decimal places, no thousands separators.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func TrimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
