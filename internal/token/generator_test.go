package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_Length(t *testing.T) {
	g := NewGenerator()

	for _, length := range []int{1, 16, 32, 64} {
		got, err := g.Generate(length)
		require.NoError(t, err)
		assert.Len(t, got, length)
	}
}

func TestGenerator_Generate_Alphabet(t *testing.T) {
	g := NewGenerator()

	got, err := g.Generate(256)
	require.NoError(t, err)

	for _, r := range got {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, isAlnum, "unexpected character %q", r)
	}
}

func TestGenerator_Generate_Unique(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		got, err := g.Generate(32)
		require.NoError(t, err)

		_, dup := seen[got]
		require.False(t, dup, "generated duplicate token %s", got)
		seen[got] = struct{}{}
	}
}

func TestGenerator_Generate_InvalidLength(t *testing.T) {
	g := NewGenerator()

	_, err := g.Generate(0)
	require.Error(t, err)

	_, err = g.Generate(-5)
	require.Error(t, err)
}
