package main

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuratedQuotes(t *testing.T) {
	require.Len(t, curatedQuotes, 27)
	for _, q := range curatedQuotes {
		assert.NotEmpty(t, q)
	}
}

func TestRandomQuote(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		q := randomQuote(rng)
		require.True(t, slices.Contains(curatedQuotes, q), q)
		seen[q] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestLoadQuotes(t *testing.T) {
	quotes, err := loadQuotes([]byte("quotes:\n  - one\n  - two\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, quotes)

	_, err = loadQuotes([]byte("quotes: []\n"))
	assert.Error(t, err)

	_, err = loadQuotes([]byte("quotes: [unterminated\n"))
	assert.Error(t, err)
}
