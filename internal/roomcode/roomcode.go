// Package roomcode generates and checks the short codes people type to join
// a room.
package roomcode

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var pattern = regexp.MustCompile(`^[A-Z0-9]{3}-[A-Z0-9]{3}$`)

// Generate returns a random code of the form XXX-XXX.
func Generate() (string, error) {
	var b strings.Builder
	b.Grow(7)
	size := big.NewInt(int64(len(alphabet)))
	for i := 0; i < 6; i++ {
		if i == 3 {
			b.WriteByte('-')
		}
		n, err := crand.Int(crand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// Normalize trims whitespace and upper-cases user input.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code is a well-formed, normalized room code.
func Valid(code string) bool {
	return pattern.MatchString(code)
}
