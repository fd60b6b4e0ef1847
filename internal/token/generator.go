// Package token generates opaque random strings. Tokens carry no embedded
// structure; they are meaningful only through a store lookup.
package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/ndzhokv/userd/internal/model"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var _ model.TokenGenerator = (*Generator)(nil)

// Generator draws characters uniformly from [a-zA-Z0-9] using a
// cryptographically secure source. It is stateless and safe for concurrent
// use.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a random string of exactly length characters.
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid token length %d", length)
	}

	var b strings.Builder
	b.Grow(length)

	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}

	return b.String(), nil
}
